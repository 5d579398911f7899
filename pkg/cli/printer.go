package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	headerColor = color.New(color.FgHiWhite, color.Bold)
	labelColor  = color.New(color.FgHiCyan)
	okColor     = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.FgWhite)
)

type printer struct {
	w   io.Writer
	msg *message.Printer
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:   w,
		msg: message.NewPrinter(language.Swedish),
	}
}

// amount formats minor units as kronor, e.g. 123450 as "1 234,50 kr"
func (p *printer) amount(a model.Amount) string {
	major, minor := int64(a)/100, int64(a)%100
	if minor < 0 {
		minor = -minor
	}
	return p.msg.Sprintf("%d", major) + fmt.Sprintf(",%02d kr", minor)
}

func (p *printer) line(label, value string) {
	labelColor.Fprintf(p.w, "  %-14s", label)
	fmt.Fprintln(p.w, value)
}

func (p *printer) receipt(r *model.Receipt) {
	okColor.Fprintln(p.w, "Order confirmed")
	p.line("Receipt", string(r.ID))
	p.line("Date", r.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(p.w)

	headerColor.Fprintln(p.w, "Items")
	for _, item := range r.Items {
		p.line(fmt.Sprintf("%d x", item.Quantity), fmt.Sprintf("%s  %s", item.Product.Name, p.amount(item.LineTotal())))
	}
	fmt.Fprintln(p.w)

	headerColor.Fprintln(p.w, "Customer")
	c := r.Customer
	p.line("Name", c.FirstName+" "+c.LastName)
	p.line("Mobile", c.MobileNumber)
	p.line("Address", fmt.Sprintf("%s, %s %s", c.Address, c.Postal, c.City))
	if c.Recipient != nil {
		p.line("Recipient", fmt.Sprintf("%s %s (%s)", c.Recipient.FirstName, c.Recipient.LastName, c.Recipient.MobileNumber))
	}
	fmt.Fprintln(p.w)

	headerColor.Fprintln(p.w, "Delivery & payment")
	p.line("Delivery", fmt.Sprintf("%s  %s", r.Delivery.Name, p.amount(r.Delivery.Fee)))
	p.line("Payment", fmt.Sprintf("%s  %s", r.Payment.Name, p.amount(r.Payment.Fee)))
	if r.SubPayment != nil {
		p.line("", fmt.Sprintf("%s  %s", r.SubPayment.Name, p.amount(r.SubPayment.Fee)))
	}
	if r.Card != nil {
		p.line("Card", fmt.Sprintf("**** %s  %s/%s", r.Card.Last4, r.Card.Month, r.Card.Year))
	}
	fmt.Fprintln(p.w)

	p.line("Items total", p.amount(r.ItemTotal))
	p.line("Total", okColor.Sprint(p.amount(r.Total)))
}

func (p *printer) failure(f *model.ValidationFailure) {
	errorColor.Fprintln(p.w, "Order rejected")
	for _, issue := range f.Issues {
		if issue.Field != "" {
			p.line(issue.Field.String(), errorColor.Sprint(string(issue.Reason)))
			continue
		}
		p.line("checkout", errorColor.Sprint(string(issue.Reason)))
	}
}

func (p *printer) catalog(catalog *model.Catalog, schema *config.FieldSchema) {
	headerColor.Fprintln(p.w, "Delivery")
	for _, d := range catalog.Deliveries() {
		p.line(d.ID.String(), fmt.Sprintf("%s  %s", d.Name, p.amount(d.Fee)))
		if d.Description != "" {
			dimColor.Fprintf(p.w, "  %-14s%s\n", "", d.Description)
		}
	}
	fmt.Fprintln(p.w)

	headerColor.Fprintln(p.w, "Payment")
	for _, pay := range catalog.Payments() {
		p.line(pay.ID.String(), fmt.Sprintf("%s  %s", pay.Name, p.amount(pay.Fee)))
		for _, sub := range catalog.SubPayments(pay.ID) {
			p.line("  "+sub.ID.String(), fmt.Sprintf("%s  %s", sub.Name, p.amount(sub.Fee)))
		}
		if len(pay.RequiredFields) > 0 {
			dimColor.Fprintf(p.w, "  %-14srequires %v\n", "", pay.RequiredFields)
		}
	}
	fmt.Fprintln(p.w)

	headerColor.Fprintln(p.w, "Fields")
	for _, f := range schema.Fields {
		flags := f.Kind.String()
		if f.Required {
			flags += ", required"
		}
		if f.Alternate {
			flags += ", alternate"
		}
		p.line(f.ID.String(), fmt.Sprintf("%s (%s)", f.Name, flags))
	}
}
