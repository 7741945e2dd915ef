package ports

import "context"

// AwardService records the status codes users trigger.
type AwardService interface {
	// Grant adds code to the user's award set. Granting an already-held
	// code changes nothing.
	Grant(ctx context.Context, username string, code int) error
}
