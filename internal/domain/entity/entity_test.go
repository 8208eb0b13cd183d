package entity

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wire string
		want string
	}{
		{"uuid", "uuid"},
		{"first_name", "firstName"},
		{"date_of_birth", "dateOfBirth"},
		{"two_percent_shareholder", "twoPercentShareholder"},
		{"street_1", "street1"},
		{"day_1", "day1"},
		{"anchor_end_of_pay_period", "anchorEndOfPayPeriod"},
	}

	for _, tt := range tests {
		if got := CamelCase(tt.wire); got != tt.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.wire, got, tt.want)
		}
	}

	// Determinism: the same wire name always maps to the same domain name.
	if CamelCase("pay_period") != CamelCase("pay_period") {
		t.Error("CamelCase must be deterministic")
	}
}

func TestFromWire_RenamesAndDropsUnknown(t *testing.T) {
	t.Parallel()

	wire := map[string]any{
		"uuid":               "emp-1",
		"first_name":         "Ada",
		"last_name":          "Lovelace",
		"date_of_birth":      "1990-12-10",
		"some_future_field":  "ignored",
		"another_new_object": map[string]any{"x": 1},
	}

	got := Employee.FromWire(wire)

	if got["firstName"] != "Ada" {
		t.Errorf("firstName = %v, want Ada", got["firstName"])
	}
	if got["dateOfBirth"] != "1990-12-10" {
		t.Errorf("dateOfBirth = %v", got["dateOfBirth"])
	}
	if _, ok := got["someFutureField"]; ok {
		t.Error("unknown wire fields must be dropped, not mapped")
	}
	if _, ok := got["some_future_field"]; ok {
		t.Error("unknown wire fields must be dropped, not copied")
	}
}

func TestFromWire_ToleratesMissingAndNull(t *testing.T) {
	t.Parallel()

	wire := map[string]any{
		"uuid":       "emp-2",
		"first_name": nil, // explicit null treated as absent
	}

	got := Employee.FromWire(wire)
	if _, ok := got["firstName"]; ok {
		t.Error("null wire values must map to absence")
	}
	if got["uuid"] != "emp-2" {
		t.Errorf("uuid = %v", got["uuid"])
	}

	if Employee.FromWire(nil) != nil {
		t.Error("FromWire(nil) should be nil")
	}
}

func TestFromWire_NestedRecursion(t *testing.T) {
	t.Parallel()

	wire := map[string]any{
		"uuid": "emp-3",
		"home_address": map[string]any{
			"street_1": "1 Main St",
			"city":     "Denver",
			"zip":      "80202",
		},
		"jobs": []any{
			map[string]any{
				"uuid":          "job-1",
				"employee_uuid": "emp-3",
				"hire_date":     "2023-01-15",
				"payment_unit":  "Hour",
				"compensations": []any{
					map[string]any{"uuid": "comp-1", "rate": "32.50", "payment_unit": "Hour"},
				},
			},
		},
	}

	got := Employee.FromWire(wire)

	addr, ok := got["homeAddress"].(map[string]any)
	if !ok {
		t.Fatalf("homeAddress = %T, want object", got["homeAddress"])
	}
	if addr["street1"] != "1 Main St" {
		t.Errorf("street1 = %v", addr["street1"])
	}

	jobs, ok := got["jobs"].([]any)
	if !ok || len(jobs) != 1 {
		t.Fatalf("jobs = %v", got["jobs"])
	}
	job := jobs[0].(map[string]any)
	if job["hireDate"] != "2023-01-15" {
		t.Errorf("hireDate = %v", job["hireDate"])
	}
	comps := job["compensations"].([]any)
	comp := comps[0].(map[string]any)
	if comp["rate"] != "32.50" {
		t.Errorf("rate = %v, monetary amounts must stay decimal strings", comp["rate"])
	}
}

func TestToWire_OmitsAbsentNeverNull(t *testing.T) {
	t.Parallel()

	domain := Entity{
		"firstName":  "Grace",
		"lastName":   nil, // explicitly nil: must be omitted, not serialized as null
		"middleName": "x", // not a supported field
	}

	wire := Employee.ToWire(domain)

	if wire["first_name"] != "Grace" {
		t.Errorf("first_name = %v", wire["first_name"])
	}
	if _, ok := wire["last_name"]; ok {
		t.Error("nil domain values must be omitted from the wire object")
	}
	if _, ok := wire["email"]; ok {
		t.Error("absent domain fields must be omitted from the wire object")
	}

	// A PUT body built from this object must not contain any null: absent
	// means "leave unchanged" upstream, null means "clear".
	raw, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"first_name":"Grace"}` {
		t.Errorf("wire JSON = %s", raw)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Domain object with only supported fields populated.
	domain := Entity{
		"uuid":      "ctr-1",
		"type":      "Individual",
		"wageType":  "Hourly",
		"firstName": "Lin",
		"lastName":  "Chu",
		"startDate": "2024-02-01",
		"address": map[string]any{
			"street1": "9 Elm St",
			"city":    "Austin",
			"state":   "TX",
			"zip":     "78701",
		},
	}

	wire := Contractor.ToWire(domain)
	back := Contractor.FromWire(wire)

	if !reflect.DeepEqual(Entity(back), domain) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", back, domain)
	}
}

func TestRoundTrip_WireSide(t *testing.T) {
	t.Parallel()

	// Every supported wire field with a value survives wire -> domain -> wire.
	wire := map[string]any{
		"uuid":            "ps-1",
		"version":         "v1",
		"frequency":       "Every other week",
		"anchor_pay_date": "2024-01-05",
		"day_1":           float64(15),
		"auto_pay":        true,
	}

	back := PaySchedule.ToWire(PaySchedule.FromWire(wire))
	if !reflect.DeepEqual(back, wire) {
		t.Errorf("wire round trip mismatch:\n got %#v\nwant %#v", back, wire)
	}
}

func TestFromWireSlice(t *testing.T) {
	t.Parallel()

	wire := []any{
		map[string]any{"uuid": "e1", "first_name": "A"},
		"not-an-object",
		map[string]any{"uuid": "e2", "first_name": "B"},
	}

	got := Employee.FromWireSlice(wire)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (non-objects skipped)", len(got))
	}
	if got[0]["firstName"] != "A" || got[1]["firstName"] != "B" {
		t.Errorf("slice mapping mismatch: %v", got)
	}
}

func TestMappings_WireDomainConsistency(t *testing.T) {
	t.Parallel()

	// Every declared field's domain name must be the deterministic camelCase
	// of its wire name, and wire names must be unique per mapping.
	mappings := []*Mapping{
		Address, Company, Compensation, Job, Employee, Contractor,
		PayPeriod, PayrollTotals, EmployeeCompensation, Payroll,
		PaySchedule, ContractorPayment, HolidayPayPolicy, TokenInfo,
	}

	for _, m := range mappings {
		seen := make(map[string]bool, len(m.Fields))
		for _, field := range m.Fields {
			if field.Domain != CamelCase(field.Wire) {
				t.Errorf("%s: field %q maps to %q, want %q", m.Name, field.Wire, field.Domain, CamelCase(field.Wire))
			}
			if seen[field.Wire] {
				t.Errorf("%s: duplicate wire field %q", m.Name, field.Wire)
			}
			seen[field.Wire] = true
		}
	}
}
