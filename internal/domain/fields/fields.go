package fields

import "strconv"

const Unavailable = "No disponible"

// MovieRuntime renders as the runtime in minutes, or the unavailable
// sentinel when the provider reports zero.
type MovieRuntime int32

func (m MovieRuntime) MarshalJSON() ([]byte, error) {
	if m == 0 {
		return []byte(strconv.Quote(Unavailable)), nil
	}
	return []byte(strconv.Itoa(int(m))), nil
}
