package cli

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/conformal/coinvoice-plugins/coinvoice/checkout"
)

// orderFile is the YAML layout of an order handed to the create command.
// Amounts are strings so they never pass through a float.
type orderFile struct {
	ID       string `yaml:"id"`
	Key      string `yaml:"key"`
	Currency string `yaml:"currency"`
	Payer    struct {
		Name     string `yaml:"name"`
		Address1 string `yaml:"address1"`
		Address2 string `yaml:"address2"`
		City     string `yaml:"city"`
		State    string `yaml:"state"`
		Zip      string `yaml:"zip"`
		Country  string `yaml:"country"`
		Phone    string `yaml:"phone"`
		Email    string `yaml:"email"`
	} `yaml:"payer"`
	Lines []struct {
		Code        string `yaml:"code"`
		Description string `yaml:"description"`
		Quantity    int64  `yaml:"quantity"`
		Total       string `yaml:"total"`
	} `yaml:"lines"`
	Shipping   string `yaml:"shipping"`
	Tax        string `yaml:"tax"`
	Discount   string `yaml:"discount"`
	GrandTotal string `yaml:"grand_total"`
}

func loadOrder(path string) (*checkout.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f orderFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	o := &checkout.Order{
		ID:       f.ID,
		Key:      f.Key,
		Currency: f.Currency,
		Payer:    checkout.Payer(f.Payer),
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
	for i, l := range f.Lines {
		total, err := amount(l.Total)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d total", i)
		}
		o.Lines = append(o.Lines, checkout.Line{Code: l.Code, Description: l.Description, Quantity: l.Quantity, Total: total})
	}
	for _, a := range []struct {
		name string
		src  string
		dst  *decimal.Decimal
	}{
		{"shipping", f.Shipping, &o.Shipping},
		{"tax", f.Tax, &o.Tax},
		{"discount", f.Discount, &o.Discount},
		{"grand_total", f.GrandTotal, &o.GrandTotal},
	} {
		v, err := amount(a.src)
		if err != nil {
			return nil, errors.Wrap(err, a.name)
		}
		*a.dst = v
	}
	return o, nil
}

func amount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
