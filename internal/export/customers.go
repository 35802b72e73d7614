package export

import (
	"bagy2shopify/internal/bagy"
	"bagy2shopify/internal/sheet"
)

var customerHeader = []string{
	"ID", "Nome", "Email", "CPF/CNPJ", "Telefone", "Data de Nascimento", "Sexo",
	"Cidade", "Estado", "CEP", "Rua", "Número", "Complemento", "Bairro",
}

func CustomersTable(customers []bagy.Customer) sheet.Table {
	t := sheet.Table{Name: "Clientes", Header: customerHeader}
	for _, c := range customers {
		addr := bagy.Address{}
		if c.Address != nil {
			addr = *c.Address
		}
		t.Rows = append(t.Rows, []any{
			c.ID.String(), c.Name, c.Email, c.CGC.String(), c.Phone.String(),
			c.Birthday.String(), c.Gender.String(),
			addr.City, addr.State, addr.Zipcode.String(), addr.Street,
			addr.Number.String(), addr.Detail, addr.District,
		})
	}
	return t
}
