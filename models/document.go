package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InsertResult, UpdateResult and DeleteResult mirror the write acknowledgements the
// web and mobile clients already parse.
type InsertResult struct {
	Acknowledged bool    `json:"acknowledged"`
	InsertedID   *string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func Inserted(id string) *InsertResult {
	return &InsertResult{Acknowledged: true, InsertedID: &id}
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

var knownFieldCache sync.Map // reflect.Type -> map[string]struct{}

func knownFields(t reflect.Type) map[string]struct{} {
	if cached, ok := knownFieldCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	fields := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[name] = struct{}{}
	}
	knownFieldCache.Store(t, fields)
	return fields
}

// decodeDocument decodes data into dst and returns the top-level keys dst does not declare.
// dst must point at a struct type without its own UnmarshalJSON.
func decodeDocument[T any](data []byte, dst *T) (datatypes.JSONMap, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := knownFields(reflect.TypeOf(*dst))
	var extras datatypes.JSONMap
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if extras == nil {
			extras = datatypes.JSONMap{}
		}
		extras[k] = v
	}
	return extras, nil
}

// encodeDocument marshals src and folds extras back in. Declared fields win on collision.
func encodeDocument(src any, extras datatypes.JSONMap) ([]byte, error) {
	body, err := json.Marshal(src)
	if err != nil || len(extras) == 0 {
		return body, err
	}

	var merged map[string]any
	if err := json.Unmarshal(body, &merged); err != nil {
		return nil, err
	}
	for k, v := range extras {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
