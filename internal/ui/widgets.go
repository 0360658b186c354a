package ui

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/creator79/AutoTyper/internal/config"
	"github.com/creator79/AutoTyper/internal/format"
	"github.com/creator79/AutoTyper/internal/i18n"
)

// Color palette - modern dark theme
var (
	colorBG         = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorPanel      = color.NRGBA{R: 45, G: 45, B: 50, A: 255}
	colorPanelLight = color.NRGBA{R: 55, G: 55, B: 62, A: 255}
	colorText       = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	colorTextDim    = color.NRGBA{R: 140, G: 140, B: 150, A: 255}
	colorAccent     = color.NRGBA{R: 255, G: 160, B: 60, A: 255}
	colorSuccess    = color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	colorDanger     = color.NRGBA{R: 230, G: 90, B: 90, A: 255}
)

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Fill background
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, colorBG, rect.Op())

	_, _, typing := w.getStatus()

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Scrollable content area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				return material.List(th, &w.contentList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawTextSection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawSpeedSection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawFormatSection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawFocusSection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawHotkeysSection(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return w.drawUILanguageSection(gtx)
						}),
					)
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),

			// Status line (fixed)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawStatusLine(gtx)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Action buttons (fixed at bottom)
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawActions(gtx, typing)
			}),
		)
	})
}

func (w *Window) drawTextSection(gtx layout.Context) layout.Dimensions {
	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("ui_text_section"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				// Editor box with its own background
				gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(160))
				gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(160))

				rr := gtx.Dp(unit.Dp(6))
				rect := clip.RRect{
					Rect: image.Rectangle{Max: gtx.Constraints.Max},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}
				paint.FillShape(gtx.Ops, colorPanelLight, rect.Op(gtx.Ops))

				return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					th.Palette.Fg = colorText
					ed := material.Editor(th, &w.textEditor, i18n.T("ui_text_hint"))
					ed.HintColor = colorTextDim
					return ed.Layout(gtx)
				})
			}),
		)
	})
}

func (w *Window) drawSpeedSection(gtx layout.Context) layout.Dimensions {
	charDelay := w.config.CharDelay()
	startDelay := w.config.StartDelay()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("ui_speed_section"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Preset chips
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(36))
				gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
				return material.List(th, &w.presetList).Layout(gtx, len(speedPresets), func(gtx layout.Context, i int) layout.Dimensions {
					p := speedPresets[i]
					selected := charDelay == p.delay
					return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return w.drawChip(gtx, w.presetBtns[i], i18n.T(p.labelKey), selected)
					})
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			// Char delay slider
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := fmt.Sprintf("%s: %d ms", i18n.T("ui_char_delay"), charDelay.Milliseconds())
				return w.drawSlider(gtx, &w.charDelaySlider, label)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Start delay slider
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := fmt.Sprintf("%s: %.0f %s", i18n.T("ui_start_delay"), startDelay.Seconds(), i18n.T("ui_seconds"))
				return w.drawSlider(gtx, &w.startDelaySlider, label)
			}),
		)
	})
}

func (w *Window) drawFormatSection(gtx layout.Context) layout.Dimensions {
	current := format.Language(w.config.FormatLanguage())
	languages := format.AvailableLanguages()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("ui_language_section"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(36))
				gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
				return material.List(th, &w.langList).Layout(gtx, len(languages), func(gtx layout.Context, i int) layout.Dimensions {
					lang := languages[i]
					return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return w.drawChip(gtx, w.langButtons[lang], languageLabel(lang), current == lang)
					})
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = colorTextDim
				lbl := material.Label(th, unit.Sp(11), i18n.T("ui_language_hint"))
				return lbl.Layout(gtx)
			}),
		)
	})
}

func (w *Window) drawFocusSection(gtx layout.Context) layout.Dimensions {
	fc := w.config.Focus()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("ui_focus_section"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			// Enable toggle
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, &w.focusEnabled, i18n.T("ui_focus_enable"))
			}),

			// Target substring and policy, shown only when enabled
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if !w.focusEnabled.Value {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							th := material.NewTheme()
							th.Palette.Fg = colorTextDim
							lbl := material.Label(th, unit.Sp(12), i18n.T("ui_focus_target"))
							return lbl.Layout(gtx)
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),

						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							rr := gtx.Dp(unit.Dp(6))
							macro := op.Record(gtx.Ops)
							dims := layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								th := material.NewTheme()
								th.Palette.Fg = colorText
								ed := material.Editor(th, &w.focusTarget, "")
								return ed.Layout(gtx)
							})
							call := macro.Stop()

							rect := clip.RRect{
								Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)},
								NE:   rr, NW: rr, SE: rr, SW: rr,
							}
							paint.FillShape(gtx.Ops, colorPanelLight, rect.Op(gtx.Ops))
							call.Add(gtx.Ops)

							dims.Size.X = gtx.Constraints.Max.X
							return dims
						}),

						layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

						// Lost-focus policy
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									return w.drawChip(gtx, &w.policyAbortBtn, i18n.T("ui_focus_policy_abort"), fc.Policy == "abort")
								}),
								layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									return w.drawChip(gtx, &w.policyPauseBtn, i18n.T("ui_focus_policy_pause"), fc.Policy == "pause")
								}),
							)
						}),
					)
				})
			}),
		)
	})
}

func (w *Window) drawHotkeysSection(gtx layout.Context) layout.Dimensions {
	start := w.config.StartHotkey()
	stop := w.config.StopHotkey()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("ui_hotkeys_section"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, &w.hotkeysEnabled, i18n.T("ui_hotkeys_enable"))
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawHotkeyRow(gtx, i18n.T("ui_hotkey_start"), start, &w.editStartBtn)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawHotkeyRow(gtx, i18n.T("ui_hotkey_stop"), stop, &w.editStopBtn)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawToggleRow(gtx, &w.restartOnStart, i18n.T("ui_restart_on_start"))
			}),
		)
	})
}

func (w *Window) drawHotkeyRow(gtx layout.Context, label string, hk config.HotkeyConfig, editBtn *widget.Clickable) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorTextDim
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(80))
			lbl := material.Label(th, unit.Sp(13), label)
			return lbl.Layout(gtx)
		}),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorAccent
			lbl := material.Label(th, unit.Sp(14), hk.String())
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		}),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, editBtn, i18n.T("ui_hotkey_edit"), colorPanelLight, colorText)
		}),
	)
}

func (w *Window) drawUILanguageSection(gtx layout.Context) layout.Dimensions {
	current := i18n.GetLanguage()

	return w.drawPanel(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return w.drawSectionHeader(gtx, i18n.T("ui_settings_ui_lang"))
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				var children []layout.FlexChild
				for _, lang := range i18n.AvailableLanguages() {
					l := lang // capture
					children = append(children,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Left: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								return w.drawChip(gtx, w.uiLangButtons[l], i18n.LanguageName(l), current == l)
							})
						}),
					)
				}
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
			}),
		)
	})
}

func (w *Window) drawStatusLine(gtx layout.Context) layout.Dimensions {
	status, when, _ := w.getStatus()

	text := status
	if !when.IsZero() {
		text = fmt.Sprintf("[%s] %s", when.Format("15:04:05"), status)
	}

	th := material.NewTheme()
	th.Palette.Fg = colorTextDim
	lbl := material.Label(th, unit.Sp(12), text)
	return lbl.Layout(gtx)
}

func (w *Window) drawActions(gtx layout.Context, typing bool) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if typing {
				return w.drawButton(gtx, &w.stopBtn, i18n.T("ui_stop"), colorDanger, colorText)
			}
			return w.drawButton(gtx, &w.startBtn, i18n.T("ui_start"), colorSuccess, colorText)
		}),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{}
		}),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, &w.loadBtn, i18n.T("ui_load"), colorPanel, colorText)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, &w.saveBtn, i18n.T("ui_save"), colorPanel, colorText)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return w.drawButton(gtx, &w.clearBtn, i18n.T("ui_clear"), colorPanel, colorTextDim)
		}),
	)
}

func (w *Window) drawSectionHeader(gtx layout.Context, text string) layout.Dimensions {
	th := material.NewTheme()
	th.Palette.Fg = colorTextDim

	label := material.Label(th, unit.Sp(12), text)
	label.Font.Weight = font.Medium
	return label.Layout(gtx)
}

func (w *Window) drawToggleRow(gtx layout.Context, toggle *widget.Bool, label string) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			sw := material.Switch(th, toggle, "")
			sw.Color.Enabled = colorAccent
			sw.Color.Disabled = colorPanel
			return sw.Layout(gtx)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorText
			lbl := material.Label(th, unit.Sp(13), label)
			return lbl.Layout(gtx)
		}),
	)
}

func (w *Window) drawSlider(gtx layout.Context, slider *widget.Float, label string) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = colorTextDim
			lbl := material.Label(th, unit.Sp(12), label)
			return lbl.Layout(gtx)
		}),

		layout.Rigid(layout.Spacer{Height: unit.Dp(2)}.Layout),

		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			s := material.Slider(th, slider)
			s.Color = colorAccent
			return s.Layout(gtx)
		}),
	)
}

// drawChip draws a small selectable pill button.
func (w *Window) drawChip(gtx layout.Context, btn *widget.Clickable, label string, selected bool) layout.Dimensions {
	bgColor := colorPanelLight
	textColor := colorTextDim
	if selected {
		bgColor = colorAccent
		textColor = colorBG
	}

	// Record content to measure size
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(6), Bottom: unit.Dp(6),
			Left: unit.Dp(12), Right: unit.Dp(12),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = textColor
			lbl := material.Label(th, unit.Sp(12), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	// Draw background
	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	// Replay content
	call.Add(gtx.Ops)

	return dims
}

func (w *Window) drawButton(gtx layout.Context, btn *widget.Clickable, label string, bgColor, textColor color.NRGBA) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Top: unit.Dp(10), Bottom: unit.Dp(10),
			Left: unit.Dp(20), Right: unit.Dp(20),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			th := material.NewTheme()
			th.Palette.Fg = textColor
			lbl := material.Label(th, unit.Sp(14), label)
			lbl.Font.Weight = font.Medium
			return lbl.Layout(gtx)
		})
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(8))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bgColor, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

func (w *Window) drawPanel(gtx layout.Context, content layout.Widget) layout.Dimensions {
	// First layout content to get its size
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(14)).Layout(gtx, content)
	call := macro.Stop()

	// Draw background with content size
	rr := gtx.Dp(unit.Dp(12))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, colorPanel, rect.Op(gtx.Ops))

	// Replay content drawing
	call.Add(gtx.Ops)

	return dims
}

func languageLabel(lang format.Language) string {
	switch lang {
	case format.LangText:
		return "Text"
	case format.LangPython:
		return "Python"
	case format.LangCPP:
		return "C++"
	case format.LangJava:
		return "Java"
	case format.LangJavaScript:
		return "JavaScript"
	case format.LangCSharp:
		return "C#"
	default:
		return string(lang)
	}
}
