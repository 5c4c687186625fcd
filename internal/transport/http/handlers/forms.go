package handlers

import (
	"github.com/baechuer/devevent-service/internal/application/event"
	"github.com/baechuer/devevent-service/internal/transport/http/dto"
	"github.com/baechuer/devevent-service/internal/transport/http/validate"
)

func imageOf(f *validate.Form) *event.ImageFile {
	if !f.HasImage() {
		return nil
	}
	return &event.ImageFile{Filename: f.Filename, Data: f.Image}
}

func createReqFromForm(f *validate.Form) (dto.CreateEventReq, error) {
	agenda, _, err := f.List("agenda")
	if err != nil {
		return dto.CreateEventReq{}, err
	}
	tags, _, err := f.List("tags")
	if err != nil {
		return dto.CreateEventReq{}, err
	}

	str := func(k string) string {
		v, _ := f.String(k)
		return v
	}
	return dto.CreateEventReq{
		Title:       str("title"),
		Description: str("description"),
		Overview:    str("overview"),
		Image:       str("image"),
		Venue:       str("venue"),
		Location:    str("location"),
		Date:        str("date"),
		Time:        str("time"),
		Mode:        str("mode"),
		Audience:    str("audience"),
		Agenda:      agenda,
		Organizer:   str("organizer"),
		Tags:        tags,
	}, nil
}

func updateReqFromForm(f *validate.Form) (dto.UpdateEventReq, error) {
	opt := func(k string) *string {
		v, ok := f.String(k)
		if !ok {
			return nil
		}
		return &v
	}
	optList := func(k string) (*[]string, error) {
		v, ok, err := f.List(k)
		if err != nil || !ok {
			return nil, err
		}
		return &v, nil
	}

	agenda, err := optList("agenda")
	if err != nil {
		return dto.UpdateEventReq{}, err
	}
	tags, err := optList("tags")
	if err != nil {
		return dto.UpdateEventReq{}, err
	}

	return dto.UpdateEventReq{
		Title:       opt("title"),
		Description: opt("description"),
		Overview:    opt("overview"),
		Image:       opt("image"),
		Venue:       opt("venue"),
		Location:    opt("location"),
		Date:        opt("date"),
		Time:        opt("time"),
		Mode:        opt("mode"),
		Audience:    opt("audience"),
		Agenda:      agenda,
		Organizer:   opt("organizer"),
		Tags:        tags,
	}, nil
}
