// Package protocol implements the cupcraft counter wire protocol.
//
// A wizard and a counter exchange JSON envelopes over a websocket text
// channel. Every envelope carries a "type" discriminator:
//
//	{"type":"order","order_id":"<uuid>","ticket":{...}}
//	{"type":"ack","order_id":"<uuid>","status":"accepted","message":"..."}
//	{"type":"error","order_id":"<uuid>","message":"..."}
//
// An order is answered by exactly one ack or error. An ack with status
// "rejected" means the counter understood the order and refused it; an
// error envelope means the counter could not process the message at all
// (malformed JSON, rate limited, internal failure).
//
// # Usage
//
//	data, err := protocol.Encode(protocol.NewOrder(ticket))
//	if err != nil {
//	    return err
//	}
//	conn.WriteMessage(websocket.TextMessage, data)
//
//	_, reply, err := conn.ReadMessage()
//	env, err := protocol.Decode(reply)
//
// Counters dispatch incoming envelopes through HandleMessage, which always
// produces a reply envelope.
package protocol
