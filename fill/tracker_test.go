package fill

import (
	"errors"
	"testing"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
)

func testIndex() model.Index {
	return model.Index{
		{ID: "ph_a1", Key: "company_name_0", NormalizedKey: "company_name",
			Name: "Company Name", Type: model.TypeCompany, Sequence: 1},
		{ID: "ph_b2", Key: "effective_date_1", NormalizedKey: "effective_date",
			Name: "Effective Date", Type: model.TypeDate, Sequence: 2},
		{ID: "ph_c3", Key: "company_name_5", NormalizedKey: "company_name",
			Name: "Company Name", Type: model.TypeCompany, Sequence: 3},
	}
}

func TestApplyPropagatesToSiblings(t *testing.T) {
	idx := testIndex()

	values, res, err := Apply(idx, model.Values{}, "ph_a1", "Acme Corp")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Value != "Acme Corp" {
		t.Errorf("canonical value = %q", res.Value)
	}
	if len(res.AutoFills) != 1 || res.AutoFills[0].ID != "ph_c3" {
		t.Fatalf("auto-fills = %+v, want one entry for ph_c3", res.AutoFills)
	}
	if res.NextIndex != 1 {
		t.Errorf("next index = %d, want 1", res.NextIndex)
	}

	// The primary answer lands under ID and key; the sibling gets its ID only.
	if values["ph_a1"] != "Acme Corp" || values["company_name_0"] != "Acme Corp" {
		t.Error("primary answer missing under id or key")
	}
	if values["ph_c3"] != "Acme Corp" {
		t.Error("sibling not auto-filled")
	}
	if _, ok := values["company_name_5"]; ok {
		t.Error("auto-fill must not claim the sibling's key")
	}
}

func TestApplyByKey(t *testing.T) {
	idx := testIndex()

	values, res, err := Apply(idx, model.Values{}, "effective_date_1", "1/5/2024")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Value != "01/05/2024" {
		t.Errorf("canonical value = %q, want 01/05/2024", res.Value)
	}
	if values["ph_b2"] != "01/05/2024" {
		t.Error("value not stored under occurrence ID")
	}
	if res.NextIndex != 0 {
		t.Errorf("next index = %d, want 0 (first field still open)", res.NextIndex)
	}
}

func TestApplyUnknownField(t *testing.T) {
	idx := testIndex()

	_, _, err := Apply(idx, model.Values{}, "no_such_field", "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
}

func TestApplyValidationFailureLeavesStateUntouched(t *testing.T) {
	idx := testIndex()
	orig := model.Values{"ph_a1": "Acme Corp"}

	values, _, err := Apply(idx, orig, "ph_b2", "not a date")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(values) != 1 || values["ph_a1"] != "Acme Corp" {
		t.Errorf("values mutated on failed validation: %+v", values)
	}
}

func TestApplyCompletesWhenAllFilled(t *testing.T) {
	idx := testIndex()

	values, _, err := Apply(idx, model.Values{}, "ph_a1", "Acme Corp")
	if err != nil {
		t.Fatal(err)
	}
	_, res, err := Apply(idx, values, "ph_b2", "12/25/2024")
	if err != nil {
		t.Fatal(err)
	}
	if res.NextIndex != -1 {
		t.Errorf("next index = %d, want -1 after last answer", res.NextIndex)
	}
}

func TestEditDoesNotOverwriteFilledSiblings(t *testing.T) {
	idx := testIndex()

	values, _, err := Apply(idx, model.Values{}, "ph_a1", "Acme Corp")
	if err != nil {
		t.Fatal(err)
	}

	values, res, err := Edit(idx, values, "ph_a1", "Beta LLC", false)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if res.Value != "Beta LLC" {
		t.Errorf("edited value = %q", res.Value)
	}
	if values["ph_a1"] != "Beta LLC" {
		t.Error("edit did not overwrite the primary value")
	}
	// The sibling already holds the original auto-filled answer.
	if values["ph_c3"] != "Acme Corp" {
		t.Errorf("sibling value = %q, want the original answer kept", values["ph_c3"])
	}
	if len(res.AutoFills) != 0 {
		t.Errorf("auto-fills = %+v, want none", res.AutoFills)
	}
}

func TestEditWithReaskRepositions(t *testing.T) {
	idx := testIndex()

	values, _, err := Apply(idx, model.Values{}, "ph_b2", "12/25/2024")
	if err != nil {
		t.Fatal(err)
	}

	_, res, err := Edit(idx, values, "ph_b2", "01/01/2025", true)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if res.NextIndex != 1 {
		t.Errorf("next index = %d, want the edited field's position", res.NextIndex)
	}
}

func TestComputeProgress(t *testing.T) {
	idx := testIndex()
	values := model.Values{"ph_a1": "Acme Corp", "ph_c3": "Acme Corp"}

	p := ComputeProgress(idx, values)
	if p.Filled != 2 || p.Total != 3 {
		t.Errorf("progress = %d/%d, want 2/3", p.Filled, p.Total)
	}
	if p.NextIndex != 1 {
		t.Errorf("next index = %d, want 1", p.NextIndex)
	}
	if p.Percentage < 66 || p.Percentage > 67 {
		t.Errorf("percentage = %f", p.Percentage)
	}
}
