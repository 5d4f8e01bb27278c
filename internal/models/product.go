package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidQuantity is returned when a quantity does not hold integer text.
var ErrInvalidQuantity = errors.New("quantity is not an integer")

// Product represents an inventory record as served by the items API.
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    Quantity  `json:"quantity"`
	Price       string    `json:"price"`
}

// ProductInput is the body of a create call. The server assigns the id.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    Quantity `json:"quantity"`
	Price       string   `json:"price"`
}

// ProductID is the opaque identifier assigned by the server. Ids issued as
// JSON numbers are sent back as numbers.
type ProductID string

func (id ProductID) String() string { return string(id) }

func (id ProductID) MarshalJSON() ([]byte, error) {
	if isDigits(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ProductID(s)
	return nil
}

// Quantity is a stock count kept as text. It decodes from a JSON string or
// number and always encodes as a string.
type Quantity string

// QuantityOf formats n as a Quantity.
func QuantityOf(n int) Quantity {
	return Quantity(strconv.Itoa(n))
}

// Int parses the quantity. Surrounding whitespace is ignored.
func (q Quantity) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(q)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, string(q))
	}
	return n, nil
}

func (q Quantity) String() string { return string(q) }

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(q))
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Quantity(s)
	return nil
}

// scalarText accepts a JSON string, number or null and returns its text.
func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("want string or number, got %s", data)
	}
	return n.String(), nil
}

func isDigits(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
