package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// SwaggerUI devuelve el middleware de documentación (UI en /docs) solo si el
// archivo de especificación existe. Sin él devuelve nil y la API arranca
// igual: el middleware de contrib entra en pánico al registrarse con un
// archivo inexistente.
func SwaggerUI(filePath string) fiber.Handler {
	if _, err := os.Stat(filePath); err != nil {
		return nil
	}
	return swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    "Inventario API",
	})
}
