package validation

import "testing"

type sampleInput struct {
	Price    float64 `json:"price" validate:"required,gt=0"`
	District string  `json:"district" validate:"required,district"`
}

func TestFieldNamesUseJSONTags(t *testing.T) {
	errs := Struct(sampleInput{District: "Srinagar"})
	if errs == nil || errs["price"] == "" {
		t.Fatalf("expected an error keyed price, got %v", errs)
	}
}

func TestDistrictValidator(t *testing.T) {
	errs := Struct(sampleInput{Price: 10, District: "Gotham"})
	if errs == nil || errs["district"] == "" {
		t.Fatalf("expected an error keyed district, got %v", errs)
	}

	if errs := Struct(sampleInput{Price: 10, District: "Kupwara"}); errs != nil {
		t.Fatalf("valid input rejected: %v", errs)
	}
}
