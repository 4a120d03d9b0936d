package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/render"
)

const maxBodyBytes = 1 << 20

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// htmlReply reports whether the caller is a plain browser form post, which
// gets the re-rendered page instead of the JSON envelope.
func htmlReply(r *http.Request) bool {
	return isForm(r) && !strings.Contains(r.Header.Get("Accept"), "application/json")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return badInput("request body is not valid JSON", "BODY_INVALID")
	}
	return nil
}

func parseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, badInput("request form could not be parsed", "BODY_INVALID")
	}
	return r.PostForm, nil
}

func (s *Server) submitSelect(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	var sub attributes.SelectSubmission
	if isForm(r) {
		form, err := parseForm(w, r)
		if err != nil {
			s.fail(w, r, productID, err)
			return
		}
		sub = selectFromForm(form)
	} else if err := decodeJSON(w, r, &sub); err != nil {
		s.fail(w, r, productID, err)
		return
	}
	sub.ProductID = productID

	outcome, err := s.editor.SubmitSelection(r.Context(), sub)
	if errors.Is(err, options.ErrNothingSelected) {
		err = badInput("select at least one option", "NOTHING_SELECTED")
	}
	s.finish(w, r, productID, sub.GroupID, outcome, err)
}

// selectFromForm reads a picker form. Selected ids arrive as repeated
// "option" inputs or as selectedOptionsIds.
func selectFromForm(form url.Values) attributes.SelectSubmission {
	ids := make([]string, 0, len(form["option"])+len(form["selectedOptionsIds"]))
	for _, key := range []string{"selectedOptionsIds", "option"} {
		for _, id := range form[key] {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return attributes.SelectSubmission{
		GroupID:            form.Get("groupId"),
		Kind:               attributes.Kind(form.Get("kind")),
		AttributeID:        form.Get("attributeId"),
		ProductAttributeID: form.Get("productAttributeId"),
		SelectedOptionIDs:  ids,
	}
}

type clearRequest struct {
	GroupID     string          `json:"groupId"`
	Kind        attributes.Kind `json:"kind"`
	AttributeID string          `json:"attributeId"`
}

func (s *Server) clearSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := r.PathValue("id")
	var req clearRequest
	if isForm(r) {
		form, err := parseForm(w, r)
		if err != nil {
			s.fail(w, r, productID, err)
			return
		}
		req = clearRequest{
			GroupID:     form.Get("groupId"),
			Kind:        attributes.Kind(form.Get("kind")),
			AttributeID: form.Get("attributeId"),
		}
	} else if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, productID, err)
		return
	}

	group, err := s.store.Group(ctx, productID, req.GroupID)
	if err != nil {
		s.fail(w, r, productID, err)
		return
	}
	if _, ok := group.FindSelect(req.Kind, req.AttributeID); !ok {
		s.fail(w, r, productID, notFound("ATTRIBUTE_NOT_FOUND", "select attribute "+req.AttributeID+" not found"))
		return
	}

	outcome, err := s.editor.Clear(ctx, productID, group, req.Kind, req.AttributeID, s.locale(r))
	if errors.Is(err, attributes.ErrNothingToClear) {
		err = badInput("attribute has no value to clear", "NOTHING_TO_CLEAR")
	}
	s.finish(w, r, productID, req.GroupID, outcome, err)
}

func (s *Server) submitNumbers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := r.PathValue("id")
	var batch attributes.NumberBatch
	if isForm(r) {
		form, err := parseForm(w, r)
		if err != nil {
			s.fail(w, r, productID, err)
			return
		}
		group, err := s.store.Group(ctx, productID, form.Get("groupId"))
		if err != nil {
			s.fail(w, r, productID, err)
			return
		}
		if batch, err = attributes.NumberBatchFromForm(productID, group, form); err != nil {
			s.fail(w, r, productID, err)
			return
		}
	} else if err := decodeJSON(w, r, &batch); err != nil {
		s.fail(w, r, productID, err)
		return
	}
	batch.ProductID = productID

	outcome, err := s.editor.SaveNumbers(ctx, batch)
	s.finish(w, r, productID, batch.GroupID, outcome, err)
}

func (s *Server) submitStrings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := r.PathValue("id")
	var batch attributes.StringBatch
	if isForm(r) {
		form, err := parseForm(w, r)
		if err != nil {
			s.fail(w, r, productID, err)
			return
		}
		group, err := s.store.Group(ctx, productID, form.Get("groupId"))
		if err != nil {
			s.fail(w, r, productID, err)
			return
		}
		batch = attributes.StringBatchFromForm(productID, group, s.locales, form)
	} else if err := decodeJSON(w, r, &batch); err != nil {
		s.fail(w, r, productID, err)
		return
	}
	batch.ProductID = productID

	outcome, err := s.editor.SaveStrings(ctx, batch)
	s.finish(w, r, productID, batch.GroupID, outcome, err)
}

// finish replies to a mutation. err is a rejection before anything was
// submitted; a failed outcome carries the submit error and, depending on the
// site policy, a notification.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, productID, groupID string, outcome mutation.Outcome, err error) {
	if err != nil {
		s.fail(w, r, productID, err)
		return
	}

	if outcome.Failed() {
		mapped := toError(outcome.Err)
		if htmlReply(r) {
			s.renderAttributes(w, r, productID, mapped.Code, outcome.Notification, nil)
			return
		}
		message := ""
		if outcome.Notification != nil {
			message = outcome.Notification.Message
		}
		writeJSON(w, mapped.Code, envelope{
			Success: false,
			Message: message,
			Error:   publicError(mapped),
		})
		return
	}

	if htmlReply(r) {
		s.renderAttributes(w, r, productID, http.StatusOK, outcome.Notification, nil)
		return
	}

	body := envelope{Success: true}
	if outcome.Notification != nil {
		body.Message = outcome.Notification.Message
	}
	if group, err := s.store.Group(r.Context(), productID, groupID); err == nil {
		body.Data = group
	} else {
		s.logger.WithContext(r.Context()).Warn("refresh after mutation failed", "product", productID, "group", groupID, "error", err)
	}
	writeJSON(w, http.StatusOK, body)
}

// fail reports a request rejected before reaching the store. Form posts get
// the page back with inline field errors.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, productID string, err error) {
	if !htmlReply(r) {
		writeError(w, err)
		return
	}
	mapped := toError(err)
	if mapped.Code >= http.StatusInternalServerError {
		s.pageError(w, r, err)
		return
	}

	groups, gerr := s.store.Groups(r.Context(), productID)
	if gerr != nil {
		s.pageError(w, r, err)
		return
	}
	mapping := render.MapError(err, inputNames(groups, s.locales))
	note := &mutation.Notification{Kind: mutation.NotificationError, Message: mapped.Message}
	if len(mapping.Form) > 0 {
		note.Message = strings.Join(mapping.Form, " ")
	}
	s.renderAttributes(w, r, productID, mapped.Code, note, mapping.Fields)
}
