package storage

import (
	"errors"
	"testing"

	"hpfold/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	run := sampleRun("run-codec")
	payload, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRun(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != run {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, run)
	}
}

func TestFoldCodecRoundTrip(t *testing.T) {
	record := model.FoldRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "run-1",
		Encoding:        "FLRRF",
		Energy:          -4,
		Generation:      12,
		Positions:       []model.LatticePoint{{X: 0, Y: 0}, {X: 0, Y: 1}},
	}
	payload, err := EncodeFold(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeFold(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Encoding != record.Encoding || decoded.Energy != record.Energy || len(decoded.Positions) != 2 {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	run := sampleRun("run-old")
	run.SchemaVersion = CurrentSchemaVersion + 1
	payload, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}
