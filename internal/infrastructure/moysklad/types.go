package moysklad

// Meta referencia de entidad en la API de MoySklad. Href direcciona la
// entidad; Type distingue product de variant en los ensambles.
type Meta struct {
	Href      string `json:"href"`
	Type      string `json:"type"`
	MediaType string `json:"mediaType,omitempty"`
}

// entityRef wrapper {"meta": {...}} que la API usa para referenciar entidades.
type entityRef struct {
	Meta Meta `json:"meta"`
}

// listRow fila mínima de un listado de entidades (solo interesa el meta).
type listRow struct {
	Meta Meta   `json:"meta"`
	Name string `json:"name"`
}

// listResponse envoltorio de listados de la API.
type listResponse struct {
	Rows []listRow `json:"rows"`
}

// enterPosition posición de un documento de ingreso.
type enterPosition struct {
	Assortment entityRef `json:"assortment"`
	Quantity   int       `json:"quantity"`
}

// enterDocument documento "enter" (fija existencias con cantidad absoluta).
type enterDocument struct {
	Organization entityRef       `json:"organization"`
	Store        entityRef       `json:"store"`
	Description  string          `json:"description,omitempty"`
	Positions    []enterPosition `json:"positions"`
}

// salePrice precio de venta de un ensamble. Value va en centésimas
// (la API trabaja en kopeks).
type salePrice struct {
	Value     int64      `json:"value"`
	PriceType *entityRef `json:"priceType,omitempty"`
}

// assortmentPrices cuerpo del PUT de precios sobre el href del ensamble.
type assortmentPrices struct {
	SalePrices []salePrice `json:"salePrices"`
}

// apiError error estructurado que devuelve la API.
type apiError struct {
	Errors []struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	} `json:"errors"`
}
