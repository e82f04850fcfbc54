package status

import "fmt"

// ValidationError reports missing or malformed input. Handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports an unknown id or reference. Handlers map it to 404.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// GatewayError reports a payment provider rejection or an unreachable
// provider. Op names the remote call that failed.
type GatewayError struct {
	Op  string
	Msg string
	Err error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NotificationError reports an email transport or auth failure. Fatal for
// ticket issuance, surfaced but non-fatal for the admin reply flow.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// PersistenceError reports an unreachable store or a failed write. The
// payment and ticket flows log and swallow it; CRUD handlers surface it
// as a 500 with a generic message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
