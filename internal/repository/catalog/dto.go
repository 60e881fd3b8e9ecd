package catalog

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/haremir/mergenX/internal/domain/hotel"
)

// Hash field names. "embedding" and "seq" are indexed; the rest are payload.
const (
	fieldID          = "id"
	fieldTenant      = "tenant"
	fieldName        = "name"
	fieldConcept     = "concept"
	fieldCity        = "city"
	fieldDistrict    = "district"
	fieldArea        = "area"
	fieldStars       = "stars"
	fieldPrice       = "price"
	fieldCurrency    = "currency"
	fieldDescription = "description"
	fieldAmenities   = "amenities"
	fieldSeq         = "seq"
	fieldEmbedding   = "embedding"
)

const amenitySeparator = ","

// buildHashFields converts a Hotel into a flat map[string]string for HSET.
// Entries without an embedding omit the field entirely so the vector index
// never sees them.
func buildHashFields(h *hotel.Hotel) map[string]string {
	m := map[string]string{
		fieldID:          h.ID(),
		fieldTenant:      h.TenantID(),
		fieldName:        h.Name(),
		fieldConcept:     h.Concept(),
		fieldCity:        h.City(),
		fieldDistrict:    h.District(),
		fieldArea:        h.Area(),
		fieldStars:       strconv.Itoa(h.Stars()),
		fieldPrice:       h.Price().String(),
		fieldCurrency:    h.Currency(),
		fieldDescription: h.Description(),
		fieldAmenities:   strings.Join(h.Amenities(), amenitySeparator),
		fieldSeq:         strconv.FormatInt(h.Seq(), 10),
	}
	if h.HasEmbedding() {
		m[fieldEmbedding] = vectorToBytes(h.Embedding())
	}
	return m
}

// parseHashFields converts a flat hash map back into a Hotel.
func parseHashFields(m map[string]string) hotel.Hotel {
	stars, _ := strconv.Atoi(m[fieldStars])
	seq, _ := strconv.ParseInt(m[fieldSeq], 10, 64)
	price, err := decimal.NewFromString(m[fieldPrice])
	if err != nil {
		price = decimal.Zero
	}

	var amenities []string
	if raw := m[fieldAmenities]; raw != "" {
		amenities = strings.Split(raw, amenitySeparator)
	}

	var vector []float32
	if raw, ok := m[fieldEmbedding]; ok {
		vector = bytesToVector(raw)
	}

	return hotel.Reconstruct(
		m[fieldID], m[fieldTenant], m[fieldName], m[fieldConcept],
		m[fieldCity], m[fieldDistrict], m[fieldArea],
		stars, price, m[fieldCurrency], m[fieldDescription],
		amenities, vector, seq,
	)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
