// handlers/stripe.go - Project billing via Stripe
package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/webhook"
)

// CreatePaymentLink creates a Stripe Checkout session for a project.
// Without an explicit amount it bills the outstanding budget (budget
// minus revenue received so far).
func (h *Handler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	if h.Stripe.SecretKey == "" {
		respondError(w, http.StatusServiceUnavailable, "billing not configured")
		return
	}

	p, err := h.DB.GetProject(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var body struct {
		AmountCents int64 `json:"amount_cents"`
	}
	// body is optional
	if err := decodeJSON(r, &body); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	amount := body.AmountCents
	if amount <= 0 {
		amount = int64(math.Round((p.Budget - p.Revenue) * 100))
	}
	if amount <= 0 {
		respondError(w, http.StatusBadRequest, "nothing to bill")
		return
	}

	stripe.Key = h.Stripe.SecretKey
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(amount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(p.Name),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(h.Stripe.SuccessURL),
		CancelURL:  stripe.String(h.Stripe.CancelURL),
	}
	params.AddMetadata("project_id", p.ID)

	s, err := session.New(params)
	if err != nil {
		h.Log.Errorw("checkout session failed", "err", err, "project", p.ID)
		respondError(w, http.StatusBadGateway, "failed to create payment link")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"project_id":   p.ID,
		"amount_cents": amount,
		"payment_link": s.URL,
	})
}

// StripeWebhook records completed payments against their project.
// Stripe retries on non-2xx, so unprocessable events are acknowledged
// and logged instead of erroring.
func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.Log.Errorw("webhook read failed", "err", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	var event stripe.Event
	if h.Stripe.WebhookSecret != "" {
		event, err = webhook.ConstructEvent(body, r.Header.Get("Stripe-Signature"), h.Stripe.WebhookSecret)
		if err != nil {
			h.Log.Errorw("webhook signature rejected", "err", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	} else if err := json.Unmarshal(body, &event); err != nil {
		h.Log.Errorw("webhook parse failed", "err", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			h.Log.Errorw("webhook payload parse failed", "err", err, "type", event.Type)
			break
		}
		amount := pi.AmountReceived
		if amount == 0 {
			amount = pi.Amount
		}
		h.recordPayment(pi.Metadata["project_id"], amount, pi.ID)
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			h.Log.Errorw("webhook payload parse failed", "err", err, "type", event.Type)
			break
		}
		h.recordPayment(cs.Metadata["project_id"], cs.AmountTotal, cs.ID)
	default:
		h.Log.Debugw("ignoring webhook event", "type", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) recordPayment(projectID string, amountCents int64, paymentID string) {
	if projectID == "" {
		h.Log.Warnw("payment without project_id metadata", "payment", paymentID)
		return
	}
	if err := h.DB.RecordPayment(projectID, float64(amountCents)/100, paymentID); err != nil {
		h.Log.Errorw("record payment failed", "err", err, "project", projectID, "payment", paymentID)
		return
	}
	h.Log.Infow("payment recorded", "project", projectID, "amount_cents", amountCents, "payment", paymentID)
}
