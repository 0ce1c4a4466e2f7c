package request

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new reviewed resolved archived"`
}

func (r *UpdateFeedbackStatusRequest) Validate() error {
	return validate.Struct(r)
}
