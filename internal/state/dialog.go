package state

// DialogMode enumerates the CRUD dialog lifecycle. Only one dialog per
// screen is ever open; opening one replaces whatever came before.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreating
	DialogEditing
	DialogSubmitting
)

func (m DialogMode) String() string {
	switch m {
	case DialogCreating:
		return "creating"
	case DialogEditing:
		return "editing"
	case DialogSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Dialog tracks one entity screen's create/edit dialog: its mode, the form
// draft, per-field errors and the banner error from a failed submit.
type Dialog[F any] struct {
	mode   DialogMode
	resume DialogMode

	Form   F
	Errors map[string]string
	ErrMsg string
}

func (d *Dialog[F]) Mode() DialogMode { return d.mode }

func (d *Dialog[F]) Open() bool { return d.mode != DialogClosed }

func (d *Dialog[F]) Submitting() bool { return d.mode == DialogSubmitting }

// OpenForCreate resets the dialog completely; no residue from a previous
// create or edit survives.
func (d *Dialog[F]) OpenForCreate(form F) {
	d.mode = DialogCreating
	d.resume = DialogCreating
	d.Form = form
	d.Errors = nil
	d.ErrMsg = ""
}

func (d *Dialog[F]) OpenForEdit(form F) {
	d.mode = DialogEditing
	d.resume = DialogEditing
	d.Form = form
	d.Errors = nil
	d.ErrMsg = ""
}

// BeginSubmit moves to submitting; the caller runs validation first and only
// calls this when the form passed. Returns false when no dialog is open or a
// submit is already in flight, so a double-press cannot fire twice.
func (d *Dialog[F]) BeginSubmit() bool {
	if d.mode != DialogCreating && d.mode != DialogEditing {
		return false
	}
	d.resume = d.mode
	d.mode = DialogSubmitting
	d.Errors = nil
	d.ErrMsg = ""
	return true
}

// Reject records validation errors without leaving the editable mode.
func (d *Dialog[F]) Reject(errs map[string]string) {
	d.Errors = errs
}

// FailSubmit returns to the pre-submit mode with inputs intact so the
// operator can correct and retry.
func (d *Dialog[F]) FailSubmit(msg string, fieldErrs map[string]string) {
	if d.mode != DialogSubmitting {
		return
	}
	d.mode = d.resume
	d.ErrMsg = msg
	d.Errors = fieldErrs
}

func (d *Dialog[F]) CompleteSubmit() {
	var zero F
	d.mode = DialogClosed
	d.Form = zero
	d.Errors = nil
	d.ErrMsg = ""
}

func (d *Dialog[F]) Close() {
	var zero F
	d.mode = DialogClosed
	d.Form = zero
	d.Errors = nil
	d.ErrMsg = ""
}

// ClearFieldError drops a single field's error once the operator edits it.
func (d *Dialog[F]) ClearFieldError(field string) {
	delete(d.Errors, field)
}
