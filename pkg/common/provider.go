package common

type Provider string

const (
	GCP   Provider = "GCP"
	AWS   Provider = "AWS"
	Minio Provider = "MINIO"
)
