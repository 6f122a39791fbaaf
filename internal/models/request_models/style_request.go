package request_models

type StyleConsultRequest struct {
	Prompt     string `json:"prompt" binding:"required"`
	FaceShape  string `json:"face_shape"`
	HairLength string `json:"hair_length"`
}
