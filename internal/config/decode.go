package config

import (
	"github.com/go-viper/mapstructure/v2"
)

// DecodeInto decodes a merged configuration map into a typed struct,
// useful for pipelines that want a strongly-typed view of their settings
// instead of walking the map[string]any tree directly. The dotted-map
// shape stays authoritative for Merge/Validate/Diff; DecodeInto is an
// optional convenience layered on top, not a replacement for it.
func DecodeInto(cfg map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "config",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(cfg)
}
