package waybill

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix отличает накладные Samudra Paket от номеров партнеров.
const Prefix = "SP"

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate возвращает "SP" + ULID. ULID сортируется по времени создания,
// DefaultEntropy монотонна внутри одной миллисекунды и безопасна для горутин.
func (g *Generator) Generate(at time.Time) string {
	return Prefix + ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
}

// Time достает момент создания из номера накладной.
func Time(waybill string) (time.Time, bool) {
	if len(waybill) != len(Prefix)+ulid.EncodedSize || waybill[:len(Prefix)] != Prefix {
		return time.Time{}, false
	}

	id, err := ulid.ParseStrict(waybill[len(Prefix):])
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(id.Time()), true
}
