package transfer

// AttachmentInfo описывает, где физически хранятся бинарные вложения инстанса.
type AttachmentInfo struct {
	Type      string `json:"type"`
	Bucket    string `json:"bucket,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"` // for S3-compatible storage
	Namespace string `json:"namespace,omitempty"`
}

// InstanceInfo — данные для сверки совместимости двух инстансов при трансфере.
// Собирается заново на каждый запрос и нигде не сохраняется.
type InstanceInfo struct {
	Version        string         `json:"version"`
	UserUpperLimit *int           `json:"userUpperLimit"` // nil трактуется как "без ограничения"
	Attachment     AttachmentInfo `json:"attachmentInfo"`
}
