package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"hpfold/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeFold(f model.FoldRecord) ([]byte, error) {
	return json.Marshal(f)
}

func DecodeFold(data []byte) (model.FoldRecord, error) {
	var record model.FoldRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.FoldRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.FoldRecord{}, err
	}
	return record, nil
}

func EncodeEnergyHistory(history []int) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeEnergyHistory(data []byte) ([]int, error) {
	var history []int
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}
