package controllers

import (
	"trainhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetUserCertificates lists the calling user's certificates, newest first,
// enriched with training and module titles from the hierarchy snapshot
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificates, err := Engine.ListCertificates(userID)
	if err != nil {
		return engineError(c, err)
	}

	idx := Hierarchy.Current()

	result := make([]fiber.Map, 0, len(certificates))
	for _, cert := range certificates {
		entry := fiber.Map{
			"id":               cert.ID,
			"training_id":      cert.TrainingID,
			"certificate_code": cert.CertificateCode,
			"issued_at":        cert.IssuedAt,
		}
		if idx != nil {
			if node, ok := idx.Training(cert.TrainingID); ok {
				entry["training_title"] = node.Title
				if module, ok := idx.Module(node.ModuleID); ok {
					entry["module_title"] = module.Title
				}
			}
		}
		result = append(result, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
