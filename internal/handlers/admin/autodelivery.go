package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/service"
)

// POST /api/admin/auto-delivery/run
// Déclenche un passage du job d'auto-livraison et retourne l'agrégat.
// Les échecs par commande sont dans le résultat, pas dans le code HTTP :
// seule une panne de la sélection produit une erreur.
func RunAutoDelivery(c *gin.Context) {
	svc := service.NewAutoDeliveryService(database.DB)

	result, err := svc.Run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/admin/auto-delivery/preview
// Variante lecture seule : les commandes qui seraient traitées.
func PreviewAutoDelivery(c *gin.Context) {
	svc := service.NewAutoDeliveryService(database.DB)

	eligible, err := svc.Preview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"eligible": eligible, "count": len(eligible)})
}
