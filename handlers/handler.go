package handlers

import (
	"resumeforge/models"
	"resumeforge/parsers"
	"resumeforge/services"
	"resumeforge/utils"
)

// Handler carries the wired dependencies for all routes. Everything is
// injected from main; there is no package-level state.
type Handler struct {
	Users     *models.UserModel
	Profiles  *models.ProfileModel
	History   *models.HistoryModel
	JWT       *services.JWTService
	Extractor *parsers.Extractor
	Parser    *services.ParserService
	Optimizer *services.OptimizerService
	Documents *services.DocumentService
	// Storage is nil when S3 is not configured; generation then returns
	// the document inline without archiving it.
	Storage *services.StorageService

	log *utils.Logger
}

func New(users *models.UserModel, profiles *models.ProfileModel, history *models.HistoryModel,
	jwt *services.JWTService, extractor *parsers.Extractor, parser *services.ParserService,
	optimizer *services.OptimizerService, documents *services.DocumentService,
	storage *services.StorageService) *Handler {
	return &Handler{
		Users:     users,
		Profiles:  profiles,
		History:   history,
		JWT:       jwt,
		Extractor: extractor,
		Parser:    parser,
		Optimizer: optimizer,
		Documents: documents,
		Storage:   storage,
		log:       utils.NewLogger("handlers"),
	}
}
