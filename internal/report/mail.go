package report

import (
	"html/template"
	"strings"

	"github.com/go-faster/errors"

	"github.com/karolwisniewski/strumienie-03/internal/notify"
)

// DefaultSubject is the subject of product summary messages.
const DefaultSubject = "Products List"

var summaryTemplate = template.Must(template.New("summary").Parse(`<h1>{{ . }}</h1>`))

// ProductSummaryMessages renders one HTML message per customer listing the
// products of their orders, addressed to the customer's email.
func (e *Engine) ProductSummaryMessages(subject string) ([]notify.Message, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	summaries := e.CustomerProductSummaries()
	msgs := make([]notify.Message, 0, len(summaries))
	var b strings.Builder
	for _, s := range summaries {
		b.Reset()
		if err := summaryTemplate.Execute(&b, s.Text); err != nil {
			return nil, errors.Wrapf(err, "render summary for %s", s.Customer.Email())
		}
		msgs = append(msgs, notify.Message{
			To:       s.Customer.Email(),
			Subject:  subject,
			HTMLBody: b.String(),
		})
	}
	return msgs, nil
}
