// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package entity

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-diary/models"
)

// DateLayout is the layout of an entry primary key and of the date partition
// of a photo id.
const DateLayout = "20060102"

// Entry field names.
const (
	FieldWeekNumber = "wn"
	FieldWeekday    = "wd"
	FieldText       = "text"
	FieldPhotos     = "photos"
)

// Entry is the diary article of one calendar day.
type Entry struct {
	// Date is the primary key in yyyyMMdd form.
	Date string

	// WeekNumber is the US week number of Date, see [WeekNumber].
	WeekNumber int8

	// Weekday is 1 for Sunday through 7 for Saturday.
	Weekday int8

	// Text is the article body.
	Text string

	// Photos is the comma-joined list of photo ids attached to the entry.
	Photos string

	Deleted    bool
	ModifiedAt time.Time
}

func (e Entry) PrimaryKey() string  { return e.Date }
func (e Entry) Modified() time.Time { return e.ModifiedAt }
func (e Entry) IsDeleted() bool     { return e.Deleted }

// Day parses the entry date.
func (e Entry) Day() (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, e.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidKey, e.Date, err)
	}
	return day, nil
}

// NewEntry returns an empty entry for the calendar day of date with the week
// number and weekday filled in.
func NewEntry(date time.Time) Entry {
	return Entry{
		Date:       date.Format(DateLayout),
		WeekNumber: int8(WeekNumber(date)),
		Weekday:    int8(date.Weekday()) + 1,
	}
}

// WeekNumber returns the US week number of date: weeks start on Sunday and
// the week holding January 1 is week 1. December days of a week that ends in
// the next year belong to week 53, except when that week would be the 54th
// of the year, in which case they belong to week 1 of the next year.
func WeekNumber(date time.Time) int {
	jan1 := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	week := (date.YearDay()-1+int(jan1.Weekday()))/7 + 1

	saturday := date.AddDate(0, 0, int(time.Saturday-date.Weekday()))
	if date.Month() == time.December && saturday.Year() != date.Year() && week > 53 {
		return 1
	}
	return week
}

// EntryCodec converts entries to and from "Entry" records.
type EntryCodec struct{}

// NewEntryCodec returns the entry codec.
func NewEntryCodec() *EntryCodec {
	return &EntryCodec{}
}

func (c *EntryCodec) RecordType() string {
	return models.RecordTypeEntry
}

func (c *EntryCodec) ToRecord(e Entry) (models.Record, error) {
	if _, err := e.Day(); err != nil {
		return models.Record{}, err
	}

	return models.Record{
		RecordType: models.RecordTypeEntry,
		RecordName: e.Date,
		Fields: map[string]any{
			FieldWeekNumber: int(e.WeekNumber),
			FieldWeekday:    int(e.Weekday),
			FieldText:       e.Text,
			FieldPhotos:     e.Photos,
			FieldDeleted:    deletedFlag(e.Deleted),
			FieldModified:   e.ModifiedAt.UTC(),
		},
	}, nil
}

func (c *EntryCodec) FromRecord(record models.Record) (Entry, error) {
	if err := checkRecordType(record, models.RecordTypeEntry); err != nil {
		return Entry{}, err
	}

	var (
		e   = Entry{Date: record.RecordName}
		err error
	)
	if _, err = e.Day(); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if e.WeekNumber, err = int8Field(record.Fields, FieldWeekNumber); err != nil {
		return Entry{}, err
	}
	if e.Weekday, err = int8Field(record.Fields, FieldWeekday); err != nil {
		return Entry{}, err
	}
	if e.Text, err = stringField(record.Fields, FieldText); err != nil {
		return Entry{}, err
	}
	if e.Photos, err = stringField(record.Fields, FieldPhotos); err != nil {
		return Entry{}, err
	}
	if e.Deleted, err = deletedField(record.Fields); err != nil {
		return Entry{}, err
	}
	if e.ModifiedAt, err = timeField(record.Fields, FieldModified); err != nil {
		return Entry{}, err
	}

	return e, nil
}
