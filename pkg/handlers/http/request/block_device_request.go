package request

type BlockDeviceRequest struct {
	Fingerprint string                 `json:"fingerprint" validate:"required,min=8,max=64"`
	Reason      string                 `json:"reason" validate:"required,max=200"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func (r *BlockDeviceRequest) Validate() error {
	return validate.Struct(r)
}
