package state

import (
	"testing"
	"time"
)

func TestOpenForCreateLeavesNoResidue(t *testing.T) {
	var d Dialog[LocationForm]
	d.OpenForEdit(EditLocationForm(sampleLocations()[0]))
	d.Reject(map[string]string{"code": "Code is required"})

	d.OpenForCreate(NewLocationForm())
	if d.Mode() != DialogCreating {
		t.Fatalf("mode = %v", d.Mode())
	}
	if d.Form.ID != 0 || d.Form.Code != "" {
		t.Fatalf("edit residue in form: %+v", d.Form)
	}
	if d.Errors != nil || d.ErrMsg != "" {
		t.Fatalf("stale errors survived: %v %q", d.Errors, d.ErrMsg)
	}
}

func TestBeginSubmitGuardsDoubleFire(t *testing.T) {
	var d Dialog[LocationForm]
	d.OpenForCreate(NewLocationForm())

	if !d.BeginSubmit() {
		t.Fatalf("first submit should start")
	}
	if d.BeginSubmit() {
		t.Fatalf("second submit while in flight should be refused")
	}
	if d.BeginSubmit(); d.Mode() != DialogSubmitting {
		t.Fatalf("mode = %v", d.Mode())
	}
}

func TestFailSubmitReturnsToPriorModeWithInputs(t *testing.T) {
	var d Dialog[LocationForm]
	form := NewLocationForm()
	form.Code = "HAN"
	d.OpenForEdit(form)
	d.BeginSubmit()

	d.FailSubmit("Failed to update location.", nil)
	if d.Mode() != DialogEditing {
		t.Fatalf("failure should return to editing, got %v", d.Mode())
	}
	if d.Form.Code != "HAN" {
		t.Fatalf("inputs should survive a failed submit: %+v", d.Form)
	}
	if d.ErrMsg != "Failed to update location." {
		t.Fatalf("error message = %q", d.ErrMsg)
	}
}

func TestCompleteSubmitClosesAndResets(t *testing.T) {
	var d Dialog[NewsForm]
	d.OpenForCreate(NewNewsForm())
	d.BeginSubmit()
	d.CompleteSubmit()

	if d.Mode() != DialogClosed || d.Form.DraftKey != "" {
		t.Fatalf("dialog not reset: %v %+v", d.Mode(), d.Form)
	}
}

func TestClearFieldErrorDropsOnlyThatField(t *testing.T) {
	var d Dialog[LocationForm]
	d.OpenForCreate(NewLocationForm())
	d.Reject(map[string]string{"code": "Code is required", "locationName": "Location Name is required"})

	d.ClearFieldError("code")
	if _, ok := d.Errors["code"]; ok {
		t.Fatalf("code error should be cleared")
	}
	if _, ok := d.Errors["locationName"]; !ok {
		t.Fatalf("other field errors should remain")
	}
}

func TestFeedbackLatestWins(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	f := NewFeedback(4 * time.Second)

	first := f.Success("Location added", now)
	second := f.Error("Failed to delete location.", now.Add(time.Second))

	f.Expire(first)
	msg, sev, ok := f.Current()
	if !ok || msg != "Failed to delete location." || sev != SeverityError {
		t.Fatalf("older timer should not dismiss newer message: %q %q %v", msg, sev, ok)
	}

	f.Expire(second)
	if _, _, ok := f.Current(); ok {
		t.Fatalf("matching timer should dismiss")
	}
}

func TestRowActionsScopeBusyToRow(t *testing.T) {
	r := NewRowActions()
	if !r.Start("7", "confirm") {
		t.Fatalf("start should succeed")
	}
	if r.Start("7", "cancel") {
		t.Fatalf("same row should refuse a second action")
	}
	if !r.Start("8", "cancel") {
		t.Fatalf("other rows stay actionable")
	}
	r.Finish("7")
	if r.Busy("7") || !r.Busy("8") {
		t.Fatalf("unexpected busy state")
	}
}

func TestConfirmLifecycle(t *testing.T) {
	var c Confirm
	if c.Accept() {
		t.Fatalf("accept with nothing pending should refuse")
	}
	c.Ask("flight:4", "Delete flight VN123?")
	if !c.Accept() {
		t.Fatalf("accept should start the request")
	}
	if c.Accept() {
		t.Fatalf("double accept should be refused")
	}
	c.Done()
	if c.Pending() {
		t.Fatalf("done should clear the pending action")
	}
}
