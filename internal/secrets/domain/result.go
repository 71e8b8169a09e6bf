package domain

// ValidationResult classifies the outcome of one reveal attempt. Every attempt
// terminates in exactly one outcome; outcomes are values, never errors.
type ValidationResult string

// Reveal outcomes, evaluated in this precedence order.
const (
	// SuccessfullyValidated means the window was open and the password decrypted the body.
	SuccessfullyValidated ValidationResult = "successfully_validated"
	// NotFound means no secret exists for the identifier.
	NotFound ValidationResult = "not_found"
	// EarlyToShow means the secret exists but its window has not opened.
	// Rendered identically to NotFound so existence never leaks.
	EarlyToShow ValidationResult = "early_to_show"
	// Expired means the window has closed; the attempt deletes the secret.
	Expired ValidationResult = "expired"
	// PasswordRequired means no password was supplied.
	PasswordRequired ValidationResult = "password_required"
	// PasswordIncorrect means the supplied password failed to decrypt the body.
	// No access attempt is consumed.
	PasswordIncorrect ValidationResult = "password_incorrect"
)

// ValidatedSecret is the outcome of a reveal attempt. On success, Secret holds
// a projection of the stored entity with Body replaced by the decrypted
// plaintext and the removal key stripped unless self-removal is allowed.
type ValidatedSecret struct {
	Result  ValidationResult
	Message string
	Secret  *Secret
}
