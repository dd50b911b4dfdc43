package models

import (
	"encoding/json"
	"fmt"

	"github.com/vendorhub/backend/internal/domain/advisory"
	"gorm.io/datatypes"
)

func insightToJSON(in *advisory.Insight) (datatypes.JSON, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode insight: %w", err)
	}
	return datatypes.JSON(b), nil
}

func insightFromJSON(raw datatypes.JSON) (*advisory.Insight, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var in advisory.Insight
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode insight: %w", err)
	}
	return &in, nil
}
