package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openvisualizationacademy/ova-site/config"
	"github.com/openvisualizationacademy/ova-site/database"
	"github.com/openvisualizationacademy/ova-site/utils"

	courseModels "github.com/openvisualizationacademy/ova-site/models/course"
)

// Imports a course structure from a JSON file:
//
//	{
//	  "generative-ai-data-analysis": {
//	    "Introduction": ["Welcome", "How to Use This Course"],
//	    "Core Concepts": ["What Is GenAI", "Why It Matters"]
//	  }
//	}
//
// Top-level keys are course slugs; the course must already exist. Keys under
// a course are chapter titles, values are ordered segment titles. Order in
// the JSON becomes order_index. The import is idempotent: existing chapters
// and segments are updated in place, missing ones are created.
func main() {
	dryRun := flag.Bool("dry-run", false, "print planned changes without writing")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: importCourseStructure [--dry-run] <structure.json>")
	}

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read JSON file: %v", err)
	}

	structure, err := parseStructure(data)
	if err != nil {
		log.Fatalf("Failed to parse JSON: %v", err)
	}

	for _, course := range structure {
		importCourse(course, *dryRun)
	}
}

// courseSpec mirrors one top-level JSON entry, with chapter order preserved
type courseSpec struct {
	Slug     string
	Chapters []chapterSpec
}

type chapterSpec struct {
	Title    string
	Segments []string
}

// parseStructure walks the JSON token stream so that object key order is
// preserved; order in the file is the display order.
func parseStructure(data []byte) ([]courseSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var courses []courseSpec
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		slug := tok.(string)

		chapters, err := parseChapters(dec)
		if err != nil {
			return nil, fmt.Errorf("course %q: %w", slug, err)
		}

		courses = append(courses, courseSpec{Slug: slug, Chapters: chapters})
	}

	return courses, expectDelim(dec, '}')
}

func parseChapters(dec *json.Decoder) ([]chapterSpec, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var chapters []chapterSpec
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		title := tok.(string)

		var segments []string
		if err := dec.Decode(&segments); err != nil {
			return nil, fmt.Errorf("chapter %q: %w", title, err)
		}

		chapters = append(chapters, chapterSpec{Title: title, Segments: segments})
	}

	return chapters, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func importCourse(spec courseSpec, dryRun bool) {
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ?", spec.Slug, false).First(&course).Error; err != nil {
		log.Fatalf("Course %q not found; create the course first", spec.Slug)
	}

	log.Printf("Importing structure for course %q (%d chapters)", spec.Slug, len(spec.Chapters))

	created, updated := 0, 0
	for chIdx, chSpec := range spec.Chapters {
		var chapter courseModels.Chapter
		err := db.Where("course_id = ? AND slug = ? AND is_deleted = ?", course.ID, utils.Slugify(chSpec.Title), false).First(&chapter).Error
		if err != nil {
			chapter = courseModels.Chapter{
				CourseID:    course.ID,
				Title:       chSpec.Title,
				Slug:        utils.Slugify(chSpec.Title),
				IsPublished: true,
			}
			created++
		} else {
			updated++
		}
		chapter.OrderIndex = chIdx

		if dryRun {
			log.Printf("  [dry-run] chapter %d: %s", chIdx+1, chSpec.Title)
		} else if err := db.Save(&chapter).Error; err != nil {
			log.Fatalf("Failed to save chapter %q: %v", chSpec.Title, err)
		}

		for segIdx, segTitle := range chSpec.Segments {
			var segment courseModels.Segment
			err := db.Where("chapter_id = ? AND slug = ? AND is_deleted = ?", chapter.ID, utils.Slugify(segTitle), false).First(&segment).Error
			if err != nil {
				segment = courseModels.Segment{
					ChapterID:   chapter.ID,
					Title:       segTitle,
					Slug:        utils.Slugify(segTitle),
					IsPublished: true,
				}
				created++
			} else {
				updated++
			}
			segment.OrderIndex = segIdx

			if dryRun {
				log.Printf("    [dry-run] segment %d: %s", segIdx+1, segTitle)
			} else if err := db.Save(&segment).Error; err != nil {
				log.Fatalf("Failed to save segment %q: %v", segTitle, err)
			}
		}
	}

	log.Printf("Done: %d created, %d updated", created, updated)
}
