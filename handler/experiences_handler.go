package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// bindSubmission assembles an ExperienceSubmission from a multipart
// form: plain fields, the kept_screenshots JSON field an edit sends,
// and the uploaded screenshot files.
func bindSubmission(c *gin.Context) (dto.ExperienceSubmission, error) {
	var sub dto.ExperienceSubmission
	if err := c.ShouldBind(&sub); err != nil {
		return sub, err
	}

	if kept := c.PostForm("kept_screenshots"); kept != "" {
		if err := json.Unmarshal([]byte(kept), &sub.KeptScreenshots); err != nil {
			return sub, errors.New("kept_screenshots is not valid JSON")
		}
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return sub, nil
	}

	for _, fileHeader := range form.File["screenshots"] {
		file, err := fileHeader.Open()
		if err != nil {
			return sub, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return sub, err
		}
		sub.Uploads = append(sub.Uploads, dto.FileUpload{
			Name:        fileHeader.Filename,
			Data:        data,
			ContentType: fileHeader.Header.Get("Content-Type"),
		})
	}

	return sub, nil
}

// writeServiceError keeps validation and persistence failures apart:
// the first is the user's to fix, the second is ours.
func writeServiceError(c *gin.Context, err error) {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		utils.BadRequest(c, vErr.Error())
		return
	}
	log.Printf("experience operation failed: %v", err)
	utils.InternalError(c, "Database error, please try again")
}

func ListExperiencesHandler(c *gin.Context, svc *usecase.ExperienceService) {
	experiences, err := svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.Success(c, dto.ToExperienceListResponse(experiences))
}

func SearchExperiencesHandler(c *gin.Context, svc *usecase.ExperienceService) {
	experiences, err := svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filtered := usecase.Search(experiences, c.Query("q"))
	utils.Success(c, dto.ToExperienceListResponse(filtered))
}

func CreateExperienceHandler(c *gin.Context, svc *usecase.ExperienceService) {
	sub, err := bindSubmission(c)
	if err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	id, warnings, err := svc.Create(c.Request.Context(), sub)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.Created(c, "Experience added", warnings, gin.H{"id": id.Hex()})
}

func UpdateExperienceHandler(c *gin.Context, svc *usecase.ExperienceService) {
	sub, err := bindSubmission(c)
	if err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	warnings, err := svc.Update(c.Request.Context(), c.Param("id"), sub)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessMessage(c, "Experience updated", warnings)
}

func DeleteExperienceHandler(c *gin.Context, svc *usecase.ExperienceService) {
	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	utils.SuccessMessage(c, "Experience deleted", nil)
}
