package dto

// DispatchRequest lote de facturas a notificar.
type DispatchRequest struct {
	BillIDs []string `json:"bill_ids"`
}

// DispatchItem identifica una factura dentro del resultado del despacho.
type DispatchItem struct {
	BillID          string `json:"bill_id"`
	ApartmentNumber string `json:"apartment_number,omitempty"`
	TenantName      string `json:"tenant_name,omitempty"`
}

// DispatchFailure envío fallido con el error del gateway preservado literal.
type DispatchFailure struct {
	DispatchItem
	Error string `json:"error"`
}

// DispatchResponse tres listas disyuntas; cada bill_id enviado aparece en
// exactamente una. Con ellas el operador puede reintentar solo los fallidos.
type DispatchResponse struct {
	Sent      []DispatchItem    `json:"sent"`
	Failed    []DispatchFailure `json:"failed"`
	NoContact []DispatchItem    `json:"no_contact"`
}
