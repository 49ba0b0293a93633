package http

import (
	"github.com/lead-capture-api/internal/application/signup"
	"github.com/lead-capture-api/internal/infrastructure/mail"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PendingStore   signup.PendingStore
	AgreementStore signup.AgreementStore
	Mailer         mail.Mailer
	Links          signup.LinkResolver
}
