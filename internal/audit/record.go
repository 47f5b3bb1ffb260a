// Package audit builds the traceability record for one validation call:
// canonical hashes of input and output, plus the versions that produced
// them. The engine never persists these; callers hand them to whatever
// audit sink the deployment uses.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/atlantico-advisors/funding-cli/internal/model"
)

// Record ties one validation run to hashes of what went in and what came
// out, for regulatory traceability of funding decisions.
type Record struct {
	RunID          string        `json:"run_id"`
	Program        model.Program `json:"program"`
	InputHash      string        `json:"input_hash"`  // sha256 over canonical input JSON
	OutputHash     string        `json:"output_hash"` // sha256 over canonical result JSON
	Compliant      bool          `json:"compliant"`
	RuleSetVersion string        `json:"rule_set_version"`
	EngineVersion  string        `json:"engine_version"`
	ValidatedAt    time.Time     `json:"validated_at"`
}

// NewRecord derives the audit record for a completed validation.
func NewRecord(in model.ComplianceInput, result *model.ComplianceResult) (*Record, error) {
	inputHash, err := hashJSON(in)
	if err != nil {
		return nil, eris.Wrap(err, "audit: hash input")
	}
	outputHash, err := hashJSON(result)
	if err != nil {
		return nil, eris.Wrap(err, "audit: hash result")
	}

	return &Record{
		RunID:          result.RunID,
		Program:        result.Program,
		InputHash:      inputHash,
		OutputHash:     outputHash,
		Compliant:      result.IsCompliant,
		RuleSetVersion: result.RuleSetVersion,
		EngineVersion:  result.EngineVersion,
		ValidatedAt:    result.ValidatedAt,
	}, nil
}

// hashJSON hashes the canonical JSON encoding of v. encoding/json sorts map
// keys, so identical values always hash identically.
func hashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
