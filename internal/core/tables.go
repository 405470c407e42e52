package core

// Table names in the remote base.
const (
	tableCoordinadores = "Coordinadores"
	tableActividades   = "Actividades"
	tableMunicipios    = "MUNICIPIOS"
	tableTerceros      = "Terceros"
	tableKardex        = "Kardex"
	tableOrdenes       = "Ordenes"
	tableItemsOrden    = "ItemsOrden"
	tableCatalogo      = "CatalogoServicios"
)

// Tables lists every table the portal reads or writes.
func Tables() []string {
	return []string{
		tableCoordinadores,
		tableKardex,
		tableOrdenes,
		tableItemsOrden,
		tableCatalogo,
		tableTerceros,
		tableMunicipios,
		tableActividades,
	}
}
