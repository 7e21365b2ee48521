package testdata

// Document is a small two-chart SSC file. The Hard chart carries its
// own BPMS, so the simfile has split timing from the start.
const Document = `#VERSION:0.83;
#TITLE:Test Song;
#ARTIST:Nobody;
#OFFSET:0.000000;
#BPMS:0.000=120.000,
4.000=60.000;
#DISPLAYBPM:120;

#NOTEDATA:;
#STEPSTYPE:dance-single;
#DIFFICULTY:Easy;
#METER:3;
#NOTES:
0000
0000
0000
0000
,
000M
0000
0000
0000
;

#NOTEDATA:;
#STEPSTYPE:dance-single;
#DIFFICULTY:Hard;
#METER:9;
#BPMS:0.000=120.000;
#NOTES:
2000
0000
300M
0000
;
`
