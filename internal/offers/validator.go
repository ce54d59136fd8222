package offers

import "time"

const dateLayout = "2006-01-02"

// Evaluate applies an offer to an amount on a given day. The validity
// window is inclusive on both ends. The raw discount truncates toward
// zero and is clamped by the offer's cap and by the amount itself, so
// the payable amount never goes negative.
func Evaluate(offer *Offer, amountCents int64, today time.Time) (int64, error) {
	day := today.Format(dateLayout)

	// ISO dates compare correctly as strings
	if day < offer.ValidFrom {
		return 0, ErrOfferNotYetValid
	}
	if day > offer.ValidTo {
		return 0, ErrOfferExpired
	}

	discount := amountCents * int64(offer.DiscountPercent) / 100
	if discount > offer.MaxDiscountCents {
		discount = offer.MaxDiscountCents
	}
	if discount > amountCents {
		discount = amountCents
	}

	return discount, nil
}
