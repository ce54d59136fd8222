package offers

import "errors"

var (
	ErrOfferNotFound    = errors.New("offer not found")
	ErrOfferExpired     = errors.New("offer has expired")
	ErrOfferNotYetValid = errors.New("offer is not yet valid")
	ErrOfferExists      = errors.New("offer code already exists")
)
