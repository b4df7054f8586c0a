package web

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

func settingsFields(st core.Settings) []templates.Field {
	return []templates.Field{
		{Name: "siteName", Label: "Site Name", Value: st.SiteName, Required: true},
		{Name: "siteUrl", Label: "Site URL", Type: templates.InputURL, Value: st.SiteURL},
		{Name: "email", Label: "Contact Email", Type: templates.InputEmail, Value: st.Email},
		{Name: "phone", Label: "Contact Phone", Value: st.Phone},
		{Name: "currency", Label: "Currency", Value: st.Currency},
		{Name: "timezone", Label: "Timezone", Value: st.Timezone},
		{Name: "paymentGateway", Label: "Payment Gateway", Type: templates.InputSelect, Value: st.PaymentGateway, Options: []string{"razorpay", "stripe", "paypal"}},
		{Name: "razorpayKey", Label: "Razorpay Key ID", Value: st.RazorpayKey},
		{Name: "razorpaySecret", Label: "Razorpay Secret", Type: templates.InputPassword, Value: st.RazorpaySecret, Help: "Leave unchanged to keep the current secret"},
		{Name: "seoTitle", Label: "SEO Title", Value: st.SEOTitle},
		{Name: "seoDescription", Label: "SEO Description", Type: templates.InputTextarea, Value: st.SEODescription},
		{Name: "seoKeywords", Label: "SEO Keywords", Value: st.SEOKeywords},
	}
}

func parseSettings(f url.Values) core.Settings {
	return core.Settings{
		SiteName:       formText(f, "siteName"),
		SiteURL:        formText(f, "siteUrl"),
		Email:          formText(f, "email"),
		Phone:          formText(f, "phone"),
		Currency:       formText(f, "currency"),
		Timezone:       formText(f, "timezone"),
		PaymentGateway: formText(f, "paymentGateway"),
		RazorpayKey:    formText(f, "razorpayKey"),
		RazorpaySecret: formText(f, "razorpaySecret"),
		SEOTitle:       formText(f, "seoTitle"),
		SEODescription: formText(f, "seoDescription"),
		SEOKeywords:    formText(f, "seoKeywords"),
	}
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.service.Settings(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.renderSettings(w, r, http.StatusOK, st.Redacted(), nil)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, core.NewValidationError("form", "The form could not be read"), http.StatusBadRequest)
		return
	}

	next := parseSettings(r.PostForm)
	if _, err := s.service.SaveSettings(r.Context(), next); err != nil {
		status := statusFor(err)
		if status != http.StatusUnprocessableEntity {
			s.respondError(w, r, err, status)
			return
		}
		msg := core.MapError(err)
		s.renderSettings(w, r, status, next.Redacted(), templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
		return
	}
	redirect(w, r, "/settings", "Settings saved")
}

func (s *Server) renderSettings(w http.ResponseWriter, r *http.Request, status int, st core.Settings, alert templ.Component) {
	form := templates.Form(templates.FormParams{
		Action: "/settings",
		Submit: "Save settings",
		Fields: settingsFields(st),
		Error:  alert,
	})
	s.render(w, r, status, s.page(r, "Settings", "settings"), form, nil)
}
