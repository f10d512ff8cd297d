package checkout

// Stage names one step of the checkout sequence. The progression is
// linear with no retries and no rollback: a failure at any stage is
// terminal for the attempt and leaves every prior effect in place.
type Stage string

const (
	StageIdle                  Stage = "idle"
	StageValidating            Stage = "validating"
	StageCreatingOrder         Stage = "creating_order"
	StageCreatingPaymentIntent Stage = "creating_payment_intent"
	StageConfirmingPayment     Stage = "confirming_payment"
	StageSucceeded             Stage = "succeeded"
	StageFailed                Stage = "failed"
)

func (s Stage) IsTerminal() bool {
	return s == StageSucceeded || s == StageFailed
}

// String representation (for logging)
func (s Stage) String() string {
	return string(s)
}
