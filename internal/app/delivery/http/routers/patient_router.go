package routers

import (
	"fmt"
	"patient-service/internal/app/delivery/http/controllers"
	"patient-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	patientPath := fmt.Sprintf("/{%s}", constvars.URLParamPatientID)

	router.Get("/", patientController.SearchPatients)
	router.Post("/", patientController.CreatePatient)
	router.Get(patientPath, patientController.GetPatient)
	router.Put(patientPath, patientController.UpdatePatient)
	router.Delete(patientPath, patientController.DeletePatient)
}
