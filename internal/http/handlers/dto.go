package handlers

type ItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	CategoryID  *int    `json:"category_id,omitempty"`
}

// ItemUpdateRequest supports partial updates: nil fields keep their current
// value.
type ItemUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int     `json:"category_id,omitempty"`
}

type ItemResponse struct {
	Id          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	CategoryID  *int    `json:"category_id,omitempty"`
	DateAdded   string  `json:"date_added"`
	LastUpdated string  `json:"last_updated"`
	LowStock    bool    `json:"low_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ItemsSearchResult struct {
	Data []ItemResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ChangeLogResponse struct {
	ID              int     `json:"id"`
	ItemID          *int    `json:"item_id"`
	ItemName        string  `json:"item_name"`
	UserID          int     `json:"user_id"`
	FieldChanged    string  `json:"field_changed"`
	ChangeType      string  `json:"change_type"`
	OldValue        float64 `json:"old_value"`
	NewValue        float64 `json:"new_value"`
	QuantityChanged *int    `json:"quantity_changed,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ChangeLogsSearchResult struct {
	Data []ChangeLogResponse `json:"data"`
	Meta Meta                `json:"meta,omitempty"`
}

type UserResponse struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type TokenPairResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type ImportItemsResult struct {
	ImportedItemsCount int                   `json:"imported"`
	Errors             []ItemValidationError `json:"errors"`
}
