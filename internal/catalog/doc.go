// Package catalog provides the orderable reference data for cupcraft: coffee
// beans, grind levels, preparation methods and toppings.
//
// A catalog is loaded once at session start, either from the YAML document
// embedded in the binary or from a user-supplied file, and is read-only
// afterwards. Every accessor returns copies, so a *Catalog can be shared
// freely between the wizard and the counter service.
//
// # File Format
//
//	version: 1
//	beans:
//	  - id: arabica-1
//	    name: Arabica
//	    origin: Yirgacheffe, Ethiopia
//	    flavor: Bright and floral
//	    strength: 3        # 1-5
//	    color: "#8B4513"
//	grinds:
//	  - id: medium
//	    name: Medium
//	    particle_size: medium
//	    brew_methods: [Pour Over]
//	preparations:
//	  - id: pourover
//	    name: Pour Over
//	    brew_time: 180     # seconds
//	    temperature: 92    # celsius
//	toppings:
//	  - id: oat-milk
//	    name: Oat Milk
//	    category: milk     # milk, sweetener, flavor, extra
//	    price: 0.50
//
// # Validation
//
// Parse reports every problem it finds rather than stopping at the first:
// duplicate ids, strength outside 1-5, non-positive brew time, negative
// price, unknown particle size or category. Each problem is a
// *ValidationError joined into the returned error.
package catalog
