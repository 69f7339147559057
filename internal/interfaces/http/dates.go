package http

import (
	"fmt"
	"time"
)

const dateOnly = "2006-01-02"

// parseStartParam interpreta un parámetro de fecha de inicio de ventana:
// una fecha simple se interpreta como el inicio del día (00:00:00.000 UTC);
// un timestamp RFC3339 se usa tal cual. nil si el parámetro viene vacío.
func parseStartParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if d, err := time.ParseInLocation(dateOnly, s, time.UTC); err == nil {
		return &d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %q", s)
	}
	return &t, nil
}

// parseEndParam interpreta un parámetro de fecha de fin de ventana: una fecha
// simple se interpreta como el fin del día (23:59:59.999 UTC); un timestamp
// RFC3339 se usa tal cual. nil si el parámetro viene vacío.
func parseEndParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if d, err := time.ParseInLocation(dateOnly, s, time.UTC); err == nil {
		end := d.Add(24*time.Hour - time.Millisecond)
		return &end, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %q", s)
	}
	return &t, nil
}

// windowOrDefault abre la ventana cuando falta un extremo: desde epoch y
// hasta ahora.
func windowOrDefault(start, end *time.Time) (time.Time, time.Time) {
	s := time.Unix(0, 0).UTC()
	if start != nil {
		s = *start
	}
	e := time.Now().UTC()
	if end != nil {
		e = *end
	}
	return s, e
}
