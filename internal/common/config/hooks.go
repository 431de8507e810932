package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

// CustomHooks must be passed to viper.Unmarshal. viper.DecodeHook replaces viper's default hooks, so the
// duration and slice hooks are composed back in here.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		KafkaRequiredAcksHookFunc(),
	)),
}

func KafkaRequiredAcksHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if f.Kind() != reflect.String || t != reflect.TypeOf(kafka.RequireAll) {
			return data, nil
		}
		return ParseKafkaRequiredAcks(reflect.ValueOf(data).String())
	}
}

func ParseKafkaRequiredAcks(s string) (kafka.RequiredAcks, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "-1":
		return kafka.RequireAll, nil
	case "one", "1":
		return kafka.RequireOne, nil
	case "none", "0":
		return kafka.RequireNone, nil
	default:
		return kafka.RequireAll, errors.Errorf("unknown kafka required acks %q, valid values are none, one and all", s)
	}
}
