package gcp

import (
	"encoding/base64"

	"gallerist/pkg/common"
	"gallerist/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
)

// Maps GCP SDK object attributes to the domain model
func mapObjectAttributes(attrs *gcpstorage.ObjectAttrs) storage.Object {
	if attrs == nil {
		return storage.Object{}
	}

	return storage.Object{
		Key:          attrs.Name,
		Bucket:       attrs.Bucket,
		Provider:     common.GCP,
		Size:         attrs.Size,
		StorageClass: attrs.StorageClass,
		ContentType:  attrs.ContentType,
		CreatedAt:    attrs.Created,
		UpdatedAt:    attrs.Updated,
		ETag:         attrs.Etag,
		MD5Hash:      formatMD5(attrs.MD5),
		Metadata:     attrs.Metadata,
	}
}

// Converts the binary MD5 hash provided by GCP SDK into a standard Base64 encoded string
func formatMD5(hash []byte) string {
	if len(hash) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(hash)
}
