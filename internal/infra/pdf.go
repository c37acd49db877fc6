package infra

// pdf.go — client roster export using go-pdf/fpdf.
// Produces an A4 landscape table with one row per client: full name,
// cédula, tipo, estado, NIT and contact data. The file is written to
// storagePath/clientes_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnnCris/ROYDENT/internal/model"

	"github.com/go-pdf/fpdf"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GenerateClientesPDF renders the client roster and returns the file path.
// Clientes must have Usuario.Persona and TipoCliente preloaded.
func GenerateClientesPDF(clientes []model.Cliente, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("clientes_%s.pdf", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Roy Representaciones - Listado de Clientes", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generado: "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Table header ─────────────────────────────────────────────────────────
	cols := []struct {
		title string
		width float64
	}{
		{"Nombre completo", 60},
		{"Cedula", 28},
		{"Tipo", 40},
		{"Estado", 22},
		{"NIT", 26},
		{"Correo", 55},
		{"Celular", 22},
		{"Ciudad", 24},
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range cols {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, c := range clientes {
		persona := c.Usuario.Persona
		row := []string{
			persona.NombreCompleto(),
			persona.CedulaIdentidad,
			c.TipoCliente.NombreTipo,
			c.Estado,
			deref(c.NIT),
			deref(persona.Correo),
			deref(persona.NumeroCelular),
			deref(c.Ciudad),
		}
		for i, col := range cols {
			pdf.CellFormat(col.width, 6, row[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total: %d clientes", len(clientes)), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
