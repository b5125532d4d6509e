package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
)

type multipartFile = multipart.File

// withUpload abre el campo "file" del formulario multipart y lo entrega a fn.
func withUpload(c *fiber.Ctx, fn func(filename string, f multipartFile) error) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	return fn(fh.Filename, f)
}
