package request

type CreateBookingRequest struct {
	CustomerName string  `json:"customer_name" validate:"required,min=1,max=100"`
	ServiceName  string  `json:"service_name" validate:"required,min=1,max=200"`
	ListingID    string  `json:"listing_id" validate:"required,uuid4"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string  `json:"time" validate:"required,datetime=15:04"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	// OwnerID is untrusted client input; the engine always replaces it
	// with the owner resolved from the catalog.
	OwnerID            string  `json:"owner_id" validate:"required,uuid4"`
	Location           *string `json:"location,omitempty"`
	Notes              *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ProductImage       *string `json:"product_image,omitempty"`
	IncludeMakeupAddon bool    `json:"include_makeup_addon,omitempty"`
	AddonPrice         float64 `json:"addon_price,omitempty" validate:"omitempty,gte=0"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected cancelled completed"`
	// Message is the rejection reason, stored verbatim when status is rejected
	Message *string `json:"message,omitempty" validate:"omitempty,max=500"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed rejected cancelled completed"`
	Search string `json:"search"`
}
