package wire

import (
	"sort"
	"strings"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
)

// ParseDatumPayload decodes the payload of a datum line into an OutputDatum.
// The format is "target:key1=value1\tkey2=value2..." — a target name before
// the first colon, then tab-delimited key=value pairs. Empty pairs are
// skipped; an empty target or an empty key is malformed. The engine rewrites
// tabs and newlines inside values to spaces before serializing, so tab is
// unambiguous as the pair delimiter.
func ParseDatumPayload(payload string) (domain.OutputDatum, error) {
	colon := strings.Index(payload, ":")
	if colon <= 0 {
		return domain.OutputDatum{}, &domain.FormatError{Kind: "datum payload", Raw: payload}
	}

	target := payload[:colon]
	attributes := map[string]string{}

	for _, pair := range strings.Split(payload[colon+1:], "\t") {
		if pair == "" {
			continue
		}
		equals := strings.Index(pair, "=")
		if equals <= 0 {
			return domain.OutputDatum{}, &domain.FormatError{Kind: "datum payload", Raw: payload}
		}
		attributes[pair[:equals]] = pair[equals+1:]
	}

	return domain.OutputDatum{Target: target, Attributes: attributes}, nil
}

// FormatDatumPayload is the inverse of ParseDatumPayload. Attribute keys are
// emitted in sorted order so output is deterministic; tabs and newlines in
// values are replaced with spaces to keep the line format parseable.
func FormatDatumPayload(datum domain.OutputDatum) string {
	keys := make([]string, 0, len(datum.Attributes))
	for key := range datum.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value := datum.Attributes[key]
		value = strings.ReplaceAll(value, "\t", "    ")
		value = strings.ReplaceAll(value, "\n", "    ")
		pairs = append(pairs, key+"="+value)
	}

	return datum.Target + ":" + strings.Join(pairs, "\t")
}
