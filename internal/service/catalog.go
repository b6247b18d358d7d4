package service

import (
	"strings"
	"unicode"

	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

// Catalog service keys.
const (
	ServiceOilChange          = "oil_change"
	ServiceBatteryReplacement = "battery_replacement"
	ServiceWiperBlades        = "wiper_blades"
	ServiceWasherFluid        = "washer_fluid"
	ServiceEngineAirFilter    = "engine_air_filter"
	ServiceCabinAirFilter     = "cabin_air_filter"
	ServiceTireChange         = "tire_change"
)

// MatchServices returns the catalog keys a question is about, in catalog
// order. Keywords match whole words (a trailing plural "s" is allowed), so
// "coil" never matches "oil". "cabin air filter" matches only the cabin filter.
func MatchServices(question string) []string {
	words := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	has := func(phrases ...string) bool {
		for _, p := range phrases {
			if containsPhrase(words, strings.Fields(p)) {
				return true
			}
		}
		return false
	}

	var out []string
	if has("oil") {
		out = append(out, ServiceOilChange)
	}
	if has("battery", "batteries") {
		out = append(out, ServiceBatteryReplacement)
	}
	if has("wiper") {
		out = append(out, ServiceWiperBlades)
	}
	if has("washer fluid", "windshield fluid", "washer") {
		out = append(out, ServiceWasherFluid)
	}
	switch {
	case has("cabin"):
		out = append(out, ServiceCabinAirFilter)
	case has("air filter", "engine filter"):
		out = append(out, ServiceEngineAirFilter)
	}
	if has("tire", "tyre", "flat", "spare") {
		out = append(out, ServiceTireChange)
	}
	return out
}

func containsPhrase(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if w := words[i+j]; w != p && w != p+"s" && w != p+"es" {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// DefaultCatalog is the reference data seeded into service_parts.
func DefaultCatalog() []models.ServiceCatalogEntry {
	return []models.ServiceCatalogEntry{
		{
			Service: ServiceOilChange,
			Parts: []models.Part{
				{Name: "Engine oil", Qty: 1, Notes: "Choose the correct viscosity + spec for your engine (varies by year/engine). Check owner’s manual for exact spec and quantity."},
				{Name: "Oil filter", Qty: 1, Notes: "Match filter to your exact engine/year/trim. Cross-check by VIN when buying."},
				{Name: "Drain plug washer / gasket (if applicable)", Qty: 1, Notes: "Recommended if your vehicle uses a crush washer; replace to reduce leak risk."},
			},
			Tools: []models.Tool{
				{Name: "Socket + ratchet (drain plug)", Notes: "Size varies by vehicle."},
				{Name: "Oil filter wrench", Notes: "Type depends on filter design and space."},
				{Name: "Drain pan", Notes: "At least 6–8L capacity (more for larger engines)."},
				{Name: "Funnel", Notes: "Helps avoid spills."},
				{Name: "Jack + jack stands (optional)", Notes: "Only if clearance is tight; use proper lift points."},
				{Name: "Gloves + shop towels", Notes: "Keep hands clean and wipe spills."},
			},
		},
		{
			Service: ServiceBatteryReplacement,
			Parts: []models.Part{
				{Name: "Replacement car battery", Qty: 1, Notes: "Match group size, CCA rating, and terminal orientation. Confirm fitment for your year/trim."},
				{Name: "Anti-corrosion terminal spray (optional)", Qty: 1, Notes: "Helps reduce corrosion."},
			},
			Tools: []models.Tool{
				{Name: "Socket + ratchet", Notes: "Commonly 10mm for terminals (varies)."},
				{Name: "Battery terminal puller (optional)", Notes: "Helps if terminals are stuck."},
				{Name: "Wire brush / terminal cleaner", Notes: "Clean corrosion for good contact."},
				{Name: "Gloves + safety glasses", Notes: "Battery safety."},
			},
		},
		{
			Service: ServiceWiperBlades,
			Parts: []models.Part{
				{Name: "Wiper blades", Qty: 2, Notes: "Confirm exact sizes for driver/passenger."},
				{Name: "Rear wiper blade (if applicable)", Qty: 1, Notes: "Only for vehicles with rear wiper."},
			},
			Tools: []models.Tool{
				{Name: "None (usually)", Notes: "Most blades are tool-free with a clip mechanism."},
			},
		},
		{
			Service: ServiceWasherFluid,
			Parts: []models.Part{
				{Name: "Windshield washer fluid", Qty: 1, Notes: "Choose seasonal fluid for winter climates."},
			},
			Tools: []models.Tool{
				{Name: "Funnel (optional)", Notes: "Helps avoid spills."},
			},
		},
		{
			Service: ServiceEngineAirFilter,
			Parts: []models.Part{
				{Name: "Engine air filter", Qty: 1, Notes: "Confirm fitment for your year/engine."},
			},
			Tools: []models.Tool{
				{Name: "Screwdriver / socket (sometimes)", Notes: "Some housings use clips; others use screws."},
			},
		},
		{
			Service: ServiceCabinAirFilter,
			Parts: []models.Part{
				{Name: "Cabin air filter", Qty: 1, Notes: "Confirm fitment for your model/year."},
			},
			Tools: []models.Tool{
				{Name: "Trim tool (optional)", Notes: "Helps remove panels without damage."},
			},
		},
		{
			Service: ServiceTireChange,
			Parts: []models.Part{
				{Name: "Spare tire or replacement wheel/tire", Qty: 1, Notes: "Ensure correct size and bolt pattern."},
			},
			Tools: []models.Tool{
				{Name: "Jack", Notes: "Use manufacturer-recommended jack points."},
				{Name: "Jack stands (recommended)", Notes: "For safety if doing more than a quick spare swap."},
				{Name: "Lug wrench / breaker bar", Notes: "For loosening lug nuts."},
				{Name: "Torque wrench", Notes: "Tighten to spec from owner manual."},
				{Name: "Wheel chocks", Notes: "Prevent vehicle movement."},
			},
		},
	}
}
