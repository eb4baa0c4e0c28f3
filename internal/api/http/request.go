package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"gamerental-backend/internal/domain"
)

const maxBodyBytes = 1 << 16

var errSchema = errors.New("request does not match schema")

type createRentalRequest struct {
	CustomerID int32
	GameID     int32
	DaysRented int32
}

var createRentalFields = []string{"customerId", "gameId", "daysRented"}

// decodeCreateRental validates a create body. A numeric daysRented below 1 is
// reported as domain.ErrInvalidDaysRented before any schema problem, so
// {"daysRented":0} is a bad request even with the other fields missing.
// Every other problem is errSchema.
func decodeCreateRental(body io.Reader) (createRentalRequest, error) {
	var req createRentalRequest

	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return req, errSchema
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return req, errSchema
	}

	if v, ok := fields["daysRented"]; ok {
		if f, ok := looseNumberOf(v); ok && f < 1 {
			return req, domain.ErrInvalidDaysRented
		}
	}

	if len(fields) != len(createRentalFields) {
		return req, errSchema
	}
	dst := []*int32{&req.CustomerID, &req.GameID, &req.DaysRented}
	for i, name := range createRentalFields {
		v, ok := fields[name]
		if !ok {
			return req, errSchema
		}
		n, ok := int32Of(v)
		if !ok {
			return req, errSchema
		}
		*dst[i] = n
	}
	return req, nil
}

// looseNumberOf is numberOf plus the values a loose numeric comparison treats
// as zero: null, false, true as one, and blank strings.
func looseNumberOf(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, true
		}
	}
	return numberOf(v)
}

// numberOf accepts JSON numbers and numeric strings.
func numberOf(v any) (float64, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func int32Of(v any) (int32, bool) {
	f, ok := numberOf(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int32(f), true
}

// parseID parses a positive integer identifier from a path or query value.
func parseID(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidID
	}
	return int32(n), nil
}
