package service

import (
	"reflect"
	"testing"
)

func TestMatchServices(t *testing.T) {
	cases := []struct {
		question string
		want     []string
	}{
		{"How do I change my oil?", []string{ServiceOilChange}},
		{"Replace the cabin air filter", []string{ServiceCabinAirFilter}},
		{"Replace the engine air filter", []string{ServiceEngineAirFilter}},
		{"I have a flat tire", []string{ServiceTireChange}},
		{"Battery and wiper blades", []string{ServiceBatteryReplacement, ServiceWiperBlades}},
		{"Top up washer fluid", []string{ServiceWasherFluid}},
		{"Strange rattle from the dashboard", nil},
		{"Oil, filter and two new tires", []string{ServiceOilChange, ServiceTireChange}},
		{"Replace an ignition coil", nil},
		{"Boiling coolant after a long drive", nil},
		{"Toilet-paper smell from the vents", nil},
		{"Replace both air filters", []string{ServiceEngineAirFilter}},
	}
	for _, tc := range cases {
		if got := MatchServices(tc.question); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%q: want %v got %v", tc.question, tc.want, got)
		}
	}
}

func TestDefaultCatalog_CoversEveryService(t *testing.T) {
	want := []string{
		ServiceOilChange, ServiceBatteryReplacement, ServiceWiperBlades, ServiceWasherFluid,
		ServiceEngineAirFilter, ServiceCabinAirFilter, ServiceTireChange,
	}
	cat := DefaultCatalog()
	if len(cat) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(cat))
	}
	for i, e := range cat {
		if e.Service != want[i] {
			t.Fatalf("entry %d: want %s got %s", i, want[i], e.Service)
		}
		if len(e.Parts) == 0 || len(e.Tools) == 0 {
			t.Fatalf("%s: parts and tools must not be empty", e.Service)
		}
	}
	if cat[2].Parts[0].Qty != 2 {
		t.Fatalf("wiper blades come in pairs")
	}
}
