package domain

// Business is the issuing business an invoice is created under
type Business struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	GSTNumber string `json:"gst_number"`
	Address   string `json:"address"`
}

// Customer is a customer known to the backend for a business
type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	GSTNumber    string `json:"gst_number"`
	PANNumber    string `json:"pan_number"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
}
