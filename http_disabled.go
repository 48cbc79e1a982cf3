//go:build !http_enabled

package main

import (
	"github.com/google/uuid"
)

func UploadDataToDbHttp(user string,
	releaseVersion int64,
	simulationVersion int64,
	inputVersion int64,
	id uuid.UUID, data []byte) error {
	return nil
}

func SetUserDataHttp(user string, data string) error {
	return nil
}

func GetUserDataHttp(user string) (string, error) {
	return "", nil
}
